package handlers

import (
	"reflect"
	"strings"
)

// jsonFieldName makes validation messages use the client-facing key (JSON body
// or query parameter) instead of the Go field name.
func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}
