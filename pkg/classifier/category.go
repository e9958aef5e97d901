package classifier

// Category represents the group an import belongs to, in output order
type Category int

const (
	Future Category = iota
	Stdlib
	ThirdParty
	Local
)

// Categories lists every category in rendering order
var Categories = [...]Category{Future, Stdlib, ThirdParty, Local}

func (c Category) String() string {
	switch c {
	case Future:
		return "future"
	case Stdlib:
		return "stdlib"
	case ThirdParty:
		return "third-party"
	case Local:
		return "local"
	default:
		return "unknown"
	}
}
