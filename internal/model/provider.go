package model

// TableProvider read access to the worksheets of an opened workbook
type TableProvider interface {
	// SheetNames sheet names in workbook order
	SheetNames() []string
	// ReadGrid materializes a sheet; limit > 0 caps the number of rows
	ReadGrid(sheet string, limit int) (Grid, error)
}

// MemoryProvider in-memory provider for tests
type MemoryProvider struct {
	names  []string
	sheets map[string]Grid
}

// NewMemoryProvider creates an empty MemoryProvider
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{sheets: make(map[string]Grid)}
}

// AddSheet appends or replaces a sheet
func (m *MemoryProvider) AddSheet(name string, g Grid) *MemoryProvider {
	if _, ok := m.sheets[name]; !ok {
		m.names = append(m.names, name)
	}
	m.sheets[name] = g
	return m
}

func (m *MemoryProvider) SheetNames() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

func (m *MemoryProvider) ReadGrid(sheet string, limit int) (Grid, error) {
	g, ok := m.sheets[sheet]
	if !ok {
		return nil, &SheetError{Sheet: sheet, Stage: "read", Err: ErrSheetNotFound}
	}
	return g.Head(limit), nil
}
