package docext

func set(items ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		out[it] = struct{}{}
	}
	return out
}

var pythonBuiltins = set(
	"print", "len", "str", "int", "float", "bool", "list", "dict", "set",
	"tuple", "range", "open", "type", "isinstance", "issubclass", "hasattr",
	"getattr", "setattr", "delattr", "callable", "iter", "next", "enumerate",
	"zip", "map", "filter", "sorted", "reversed", "sum", "min", "max", "abs",
	"round", "pow", "divmod", "hex", "oct", "bin", "ord", "chr", "repr",
	"hash", "id", "dir", "vars", "globals", "locals", "input", "format",
	"slice", "object", "super", "property", "classmethod", "staticmethod",
)

var pythonKeywords = set(
	"if", "else", "elif", "for", "while", "try", "except", "finally",
	"with", "as", "def", "class", "return", "yield", "raise", "import",
	"from", "pass", "break", "continue", "and", "or", "not", "in", "is",
	"lambda", "global", "nonlocal", "assert", "async", "await", "del",
)

var pythonCommonTypes = set(
	"True", "False", "None", "Optional", "List", "Dict", "Set", "Tuple",
	"Union", "Any", "Callable", "Type", "Sequence", "Mapping", "Iterable",
	"Iterator", "Generator", "Path", "Self",
)

var jsBuiltins = set(
	"console", "log", "warn", "error", "require", "module", "exports",
	"async", "await", "function", "const", "let", "var", "return",
	"if", "else", "for", "while", "try", "catch", "finally", "throw",
	"new", "this", "class", "extends", "import", "export", "default",
	"true", "false", "null", "undefined", "typeof", "instanceof",
	"Array", "Object", "String", "Number", "Boolean", "Promise",
	"Map", "Set", "Date", "JSON", "Math", "Error", "RegExp",
)

const rstUnderlineChars = `=-~^"'+:._#*`
