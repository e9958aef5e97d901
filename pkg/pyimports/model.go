package pyimports

import (
	"strings"

	"github.com/siyuan-infoblox/py-imports-group/pkg/parser"
	"github.com/siyuan-infoblox/py-imports-group/pkg/store"
)

var (
	datetimeTypes = map[string]bool{"datetime": true, "date": true, "time": true, "timedelta": true}
	typingNames   = []string{"Any", "Generic", "Protocol", "TypeVar"}
)

// CreateModelImports adds the imports a pydantic model module needs for
// fields of the given type expressions, e.g. "datetime", "UUID",
// "dict[str, Any]" or "Callable[[int], str]".
func (h *Helper) CreateModelImports(requiredTypes []string) {
	h.addFrom("pydantic", "BaseModel", "ConfigDict", "Field")

	for _, typ := range requiredTypes {
		switch {
		case datetimeTypes[typ]:
			h.addFrom("datetime", typ)
		case typ == "Decimal":
			h.addFrom("decimal", "Decimal")
		case typ == "UUID":
			h.addFrom("uuid", "UUID")
		default:
			for _, name := range typingNames {
				if strings.Contains(typ, name) {
					h.addFrom("typing", name)
				}
			}
			if strings.Contains(typ, "Callable") {
				h.addFrom("collections.abc", "Callable")
			}
		}
	}
}

func (h *Helper) addFrom(module string, names ...string) {
	spec := parser.ImportSpec{Module: module}
	for _, name := range names {
		spec.Items = append(spec.Items, parser.Item{Name: name})
	}
	h.addSpec(spec, store.Main)
}
