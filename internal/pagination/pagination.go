package pagination

const (
	DefaultPage = 1
	DefaultSize = 20
	MaxSize     = 100
)

// Normalize clamps page to >= 1 and size to [1, MaxSize]; zero or negative
// values fall back to the defaults.
func Normalize(page, size int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return page, size
}

func Pages(total int64, size int) int {
	if size < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
