package render

// Columns - необязательные колонки таблицы задач. Заголовок и действия есть всегда.
type Columns struct {
	Description bool
	Deadline    bool
	Status      bool
	Hidden      bool
	Client      bool
}

// AllTaskColumns - набор страницы задач.
var AllTaskColumns = Columns{Description: true, Deadline: true, Status: true, Hidden: true, Client: true}
