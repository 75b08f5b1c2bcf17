package utils

// Paginate splits items into consecutive pages of at most pageSize
// elements. Pages are subslices of items, so they stay valid exactly as
// long as the backing slice does. A pageSize below 1 yields no pages.
func Paginate[T any](items []T, pageSize int) [][]T {
	if pageSize < 1 || len(items) == 0 {
		return nil
	}
	pages := make([][]T, 0, (len(items)+pageSize-1)/pageSize)
	for begin := 0; begin < len(items); begin += pageSize {
		end := begin + pageSize
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[begin:end])
	}
	return pages
}
