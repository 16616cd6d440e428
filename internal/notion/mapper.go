package notion

import "github.com/matsen/notiongraph/internal/record"

// UntitledTitle is used for pages whose title property is empty.
const UntitledTitle = "Untitled"

// ToRecord maps a database row onto a record. The title comes from the
// title-typed property. Select, status and multi-select values become lists;
// url, rich text and created_time values become strings. Other property
// types are dropped. Keywords start empty.
func ToRecord(p RawPage) record.Record {
	r := record.Record{
		ID:             p.ID,
		Title:          UntitledTitle,
		Keywords:       []string{},
		CreatedTime:    p.CreatedTime,
		LastEditedTime: p.LastEditedTime,
		URL:            p.URL,
		Props:          make(map[string]record.Value),
	}

	for name, prop := range p.Properties {
		switch prop.Type {
		case "title":
			if t := plainText(prop.Title); t != "" {
				r.Title = t
			}
			continue
		case "multi_select":
			values := make([]string, 0, len(prop.MultiSelect))
			for _, opt := range prop.MultiSelect {
				values = append(values, opt.Name)
			}
			setProp(r, name, record.List(values...))
		case "select":
			if prop.Select != nil {
				setProp(r, name, record.List(prop.Select.Name))
			}
		case "status":
			if prop.Status != nil {
				setProp(r, name, record.List(prop.Status.Name))
			}
		case "url":
			if prop.URL != nil {
				setProp(r, name, record.String(*prop.URL))
			}
		case "rich_text":
			setProp(r, name, record.String(plainText(prop.RichText)))
		case "created_time":
			if prop.CreatedTime != "" {
				setProp(r, name, record.String(prop.CreatedTime))
			}
		}
	}
	return r
}

// ToRecords maps every row in order.
func ToRecords(pages []RawPage) []record.Record {
	records := make([]record.Record, len(pages))
	for i, p := range pages {
		records[i] = ToRecord(p)
	}
	return records
}

// setProp stores a property unless its name collides with a fixed record field.
func setProp(r record.Record, name string, v record.Value) {
	if record.IsReserved(name) {
		return
	}
	r.Props[name] = v
}
