package pagination

const MaxLimit = 100

// Page описывает запрошенную страницу после нормализации.
type Page struct {
	Number int
	Limit  int
}

// New нормализует page/limit: страницы нумеруются с 1, limit ограничен MaxLimit.
func New(page, limit, defaultLimit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Pages количество страниц для total записей.
func (p Page) Pages(total int) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
