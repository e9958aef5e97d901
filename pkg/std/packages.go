package std

import (
	"sort"
	"strings"
)

// PythonVersion is the CPython release the registry was taken from
const PythonVersion = "3.13"

// standardModules lists the top-level modules of the CPython standard library
// as reported by sys.stdlib_module_names. It is never mutated.
var standardModules = toSet([]string{
	"__future__", "_abc", "_ast", "_asyncio", "_bisect", "_blake2", "_bz2",
	"_codecs", "_collections", "_collections_abc", "_compat_pickle", "_compression",
	"_contextvars", "_csv", "_ctypes", "_datetime", "_decimal", "_functools",
	"_hashlib", "_heapq", "_io", "_json", "_locale", "_lsprof", "_lzma",
	"_markupbase", "_md5", "_multiprocessing", "_opcode", "_operator", "_pickle",
	"_posixsubprocess", "_py_abc", "_pydecimal", "_pyio", "_queue", "_random",
	"_sha1", "_sha2", "_sha3", "_signal", "_socket", "_sqlite3", "_sre", "_ssl",
	"_stat", "_statistics", "_string", "_strptime", "_struct", "_symtable",
	"_thread", "_threading_local", "_tkinter", "_tokenize", "_tracemalloc",
	"_typing", "_uuid", "_warnings", "_weakref", "_weakrefset", "_zoneinfo",
	"abc", "antigravity", "argparse", "array", "ast", "asyncio", "atexit",
	"base64", "bdb", "binascii", "bisect", "builtins", "bz2",
	"calendar", "cmath", "cmd", "code", "codecs", "codeop", "collections",
	"colorsys", "compileall", "concurrent", "configparser", "contextlib",
	"contextvars", "copy", "copyreg", "cProfile", "csv", "ctypes", "curses",
	"dataclasses", "datetime", "dbm", "decimal", "difflib", "dis", "doctest",
	"email", "encodings", "ensurepip", "enum", "errno",
	"faulthandler", "fcntl", "filecmp", "fileinput", "fnmatch", "fractions",
	"ftplib", "functools",
	"gc", "genericpath", "getopt", "getpass", "gettext", "glob", "graphlib",
	"grp", "gzip",
	"hashlib", "heapq", "hmac", "html", "http",
	"idlelib", "imaplib", "importlib", "inspect", "io", "ipaddress", "itertools",
	"json",
	"keyword",
	"linecache", "locale", "logging", "lzma",
	"mailbox", "marshal", "math", "mimetypes", "mmap", "modulefinder", "msvcrt",
	"multiprocessing",
	"netrc", "nt", "ntpath", "nturl2path", "numbers",
	"opcode", "operator", "optparse", "os",
	"pathlib", "pdb", "pickle", "pickletools", "pkgutil", "platform", "plistlib",
	"poplib", "posix", "posixpath", "pprint", "profile", "pstats", "pty", "pwd",
	"py_compile", "pyclbr", "pydoc", "pydoc_data", "pyexpat",
	"queue", "quopri",
	"random", "re", "readline", "reprlib", "resource", "rlcompleter", "runpy",
	"sched", "secrets", "select", "selectors", "shelve", "shlex", "shutil",
	"signal", "site", "smtplib", "socket", "socketserver", "sqlite3",
	"sre_compile", "sre_constants", "sre_parse", "ssl", "stat", "statistics",
	"string", "stringprep", "struct", "subprocess", "symtable", "sys",
	"sysconfig", "syslog",
	"tabnanny", "tarfile", "tempfile", "termios", "textwrap", "this", "threading",
	"time", "timeit", "tkinter", "token", "tokenize", "tomllib", "trace",
	"traceback", "tracemalloc", "tty", "turtle", "turtledemo", "types", "typing",
	"unicodedata", "unittest", "urllib", "uuid",
	"venv",
	"warnings", "wave", "weakref", "webbrowser", "winreg", "winsound", "wsgiref",
	"xml", "xmlrpc",
	"zipapp", "zipfile", "zipimport", "zlib", "zoneinfo",
})

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// IsStandardModule reports whether the first segment of a dotted module path
// names a standard library module. "os.path" and "collections.abc" are
// standard because "os" and "collections" are.
func IsStandardModule(module string) bool {
	_, ok := standardModules[TopLevel(module)]
	return ok
}

// TopLevel returns the first dotted segment of a module path.
func TopLevel(module string) string {
	if i := strings.IndexByte(module, '.'); i >= 0 {
		return module[:i]
	}
	return module
}

// Modules returns a sorted copy of the registry
func Modules() []string {
	names := make([]string, 0, len(standardModules))
	for name := range standardModules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
