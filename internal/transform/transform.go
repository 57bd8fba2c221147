package transform

import "github.com/mcncl/gotoon/internal/models"

// RenameKeys returns a copy of v with every object key passed through
// rename, at any depth. When two keys map to the same name the later
// value wins and keeps the earlier position.
func RenameKeys(v models.Value, rename func(string) string) models.Value {
	if rename == nil {
		return v
	}

	switch v.Kind() {
	case models.KindObject:
		out := models.NewObject()
		for _, m := range v.Object().Members() {
			out.Set(rename(m.Key), RenameKeys(m.Value, rename))
		}
		return models.ObjectValue(out)
	case models.KindArray:
		items := make([]models.Value, len(v.Items()))
		for i, item := range v.Items() {
			items[i] = RenameKeys(item, rename)
		}
		return models.Array(items...)
	default:
		return v
	}
}
