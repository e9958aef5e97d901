package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      ImportSpec
	}{
		{
			name:      "direct import",
			statement: "import json",
			want:      ImportSpec{Module: "json"},
		},
		{
			name:      "dotted direct import",
			statement: "import os.path",
			want:      ImportSpec{Module: "os.path"},
		},
		{
			name:      "direct import with alias",
			statement: "import numpy as np",
			want:      ImportSpec{Module: "numpy", ModuleAlias: "np"},
		},
		{
			name:      "from import single name",
			statement: "from typing import Any",
			want:      ImportSpec{Module: "typing", Items: []Item{{Name: "Any"}}},
		},
		{
			name:      "from import several names keeps statement order",
			statement: "from typing import Optional, Any",
			want:      ImportSpec{Module: "typing", Items: []Item{{Name: "Optional"}, {Name: "Any"}}},
		},
		{
			name:      "from import with alias",
			statement: "from datetime import datetime as dt, date",
			want:      ImportSpec{Module: "datetime", Items: []Item{{Name: "datetime", Alias: "dt"}, {Name: "date"}}},
		},
		{
			name:      "pure relative import",
			statement: "from . import x",
			want:      ImportSpec{Module: "", Level: 1, Items: []Item{{Name: "x"}}},
		},
		{
			name:      "relative import without space",
			statement: "from .import x",
			want:      ImportSpec{Module: "", Level: 1, Items: []Item{{Name: "x"}}},
		},
		{
			name:      "two level relative import with module",
			statement: "from ..models import User",
			want:      ImportSpec{Module: "models", Level: 2, Items: []Item{{Name: "User"}}},
		},
		{
			name:      "relative import glued to from",
			statement: "from.models import User",
			want:      ImportSpec{Module: "models", Level: 1, Items: []Item{{Name: "User"}}},
		},
		{
			name:      "whitespace and semicolon are tolerated",
			statement: "   from   typing   import   Any ,  Optional ;  ",
			want:      ImportSpec{Module: "typing", Items: []Item{{Name: "Any"}, {Name: "Optional"}}},
		},
		{
			name:      "trailing comment is ignored",
			statement: "import os  # noqa: F401",
			want:      ImportSpec{Module: "os"},
		},
		{
			name:      "parenthesized names",
			statement: "from typing import (Any, Optional,)",
			want:      ImportSpec{Module: "typing", Items: []Item{{Name: "Any"}, {Name: "Optional"}}},
		},
		{
			name:      "parenthesized names over several lines",
			statement: "from typing import (\n    Any,\n    Optional as Opt,\n)",
			want:      ImportSpec{Module: "typing", Items: []Item{{Name: "Any"}, {Name: "Optional", Alias: "Opt"}}},
		},
		{
			name:      "comments inside a multi-line list",
			statement: "from x import (  # picked\n    a,  # first\n    b,\n)",
			want:      ImportSpec{Module: "x", Items: []Item{{Name: "a"}, {Name: "b"}}},
		},
		{
			name:      "soft keywords are valid names",
			statement: "from re import match as type",
			want:      ImportSpec{Module: "re", Items: []Item{{Name: "match", Alias: "type"}}},
		},
		{
			name:      "parenthesis glued to keyword",
			statement: "from typing import(Any)",
			want:      ImportSpec{Module: "typing", Items: []Item{{Name: "Any"}}},
		},
		{
			name:      "wildcard import",
			statement: "from os.path import *",
			want:      ImportSpec{Module: "os.path", Items: []Item{{Name: "*"}}},
		},
		{
			name:      "module whose name starts with import",
			statement: "from importlib import import_module",
			want:      ImportSpec{Module: "importlib", Items: []Item{{Name: "import_module"}}},
		},
		{
			name:      "module whose name ends with import",
			statement: "from myimport import importer",
			want:      ImportSpec{Module: "myimport", Items: []Item{{Name: "importer"}}},
		},
		{
			name:      "duplicate names collapse and later alias wins",
			statement: "from x import a, b, a as c",
			want:      ImportSpec{Module: "x", Items: []Item{{Name: "a", Alias: "c"}, {Name: "b"}}},
		},
		{
			name:      "unicode identifiers",
			statement: "from données import café",
			want:      ImportSpec{Module: "données", Items: []Item{{Name: "café"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			got, err := Parse(tt.statement)
			req.NoError(err, "Parse(%q)", tt.statement)
			req.Equal(tt.want, got, "Parse(%q)", tt.statement)
		})
	}
}

func TestParser_ParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		wantKind  error
	}{
		{"empty line", "", ErrNotAnImport},
		{"plain code", "x = 1", ErrNotAnImport},
		{"importlib call is not a statement", "importlib.reload(x)", ErrNotAnImport},
		{"keyword must be a token", "fromage import x", ErrNotAnImport},
		{"only a comment", "# import os", ErrNotAnImport},

		{"bare from", "from", ErrMalformedFromImport},
		{"from without import", "from typing", ErrMalformedFromImport},
		{"from with wrong keyword", "from typing include Any", ErrMalformedFromImport},
		{"from with zero names", "from typing import", ErrMalformedFromImport},
		{"from with empty parens", "from typing import ()", ErrMalformedFromImport},
		{"empty name slot", "from typing import Any,, Optional", ErrMalformedFromImport},
		{"trailing comma without parens", "from typing import Any,", ErrMalformedFromImport},
		{"unbalanced parens", "from typing import (Any, Optional", ErrMalformedFromImport},
		{"invalid name", "from typing import 1Any", ErrMalformedFromImport},
		{"two names without comma", "from typing import Any Optional", ErrMalformedFromImport},
		{"wildcard mixed with names", "from typing import *, Any", ErrMalformedFromImport},
		{"parenthesized wildcard", "from x import (*)", ErrMalformedFromImport},
		{"keyword as name", "from x import class", ErrMalformedFromImport},

		{"from alias missing", "from typing import Any as", ErrInvalidAlias},
		{"from alias not identifier", "from typing import Any as 9x", ErrInvalidAlias},
		{"from alias with extra token", "from typing import Any as A B", ErrInvalidAlias},
		{"wildcard alias", "from typing import * as t", ErrInvalidAlias},
		{"direct alias missing", "import numpy as", ErrInvalidAlias},
		{"direct alias not identifier", "import numpy as n-p", ErrInvalidAlias},
		{"direct alias is a keyword", "import os as class", ErrInvalidAlias},
		{"from alias is a keyword", "from typing import Any as def", ErrInvalidAlias},

		{"bare import", "import", ErrInvalidModule},
		{"direct module not identifier", "import 3d", ErrInvalidModule},
		{"direct module with stray token", "import os path", ErrInvalidModule},
		{"multiple modules through Parse", "import os, sys", ErrInvalidModule},
		{"from without module", "from import x", ErrInvalidModule},
		{"from with broken dotted path", "from a..b import c", ErrInvalidModule},
		{"keyword in module path", "import a.import.b", ErrInvalidModule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			_, err := Parse(tt.statement)
			req.Error(err, "Parse(%q) expected error", tt.statement)
			req.ErrorIs(err, tt.wantKind, "Parse(%q)", tt.statement)

			var parseErr *ParseError
			req.True(errors.As(err, &parseErr), "Parse(%q) should return *ParseError", tt.statement)
			req.Equal(tt.statement, parseErr.Statement)
		})
	}
}

func TestParser_ParseAll(t *testing.T) {
	req := require.New(t)

	specs, err := ParseAll("import os, sys as system, collections.abc")
	req.NoError(err)
	req.Equal([]ImportSpec{
		{Module: "os"},
		{Module: "sys", ModuleAlias: "system"},
		{Module: "collections.abc"},
	}, specs)

	specs, err = ParseAll("from typing import Any")
	req.NoError(err)
	req.Len(specs, 1)

	_, err = ParseAll("import os,")
	req.ErrorIs(err, ErrInvalidModule)
}

func TestParser_ErrorMessage(t *testing.T) {
	req := require.New(t)

	_, err := Parse("from typing")
	req.EqualError(err, `malformed from-import: missing 'import' keyword: "from typing"`)

	_, err = Parse("x = 1")
	req.EqualError(err, `not an import statement: "x = 1"`)
}

func TestImportSpec_Helpers(t *testing.T) {
	req := require.New(t)

	direct := ImportSpec{Module: "numpy", ModuleAlias: "np"}
	req.True(direct.IsDirect())
	req.False(direct.IsRelative())
	req.Equal("numpy", direct.Path())
	req.Equal("import numpy as np", direct.String())

	from := ImportSpec{Module: "models", Level: 2, Items: []Item{{Name: "User"}, {Name: "Group", Alias: "G"}}}
	req.False(from.IsDirect())
	req.True(from.IsRelative())
	req.Equal("..models", from.Path())
	req.Equal("from ..models import User, Group as G", from.String())

	// String output parses back to the same spec
	again, err := Parse(from.String())
	req.NoError(err)
	req.Equal(from, again)
}
