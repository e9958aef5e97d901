package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/py-imports-group/pkg/classifier"
	"github.com/siyuan-infoblox/py-imports-group/pkg/parser"
)

func newTestStore(t *testing.T, cfg classifier.Config) *Store {
	t.Helper()
	c, err := classifier.New(cfg)
	require.NoError(t, err)
	return New(c)
}

func add(t *testing.T, s *Store, target Target, statements ...string) {
	t.Helper()
	for _, statement := range statements {
		spec, err := parser.Parse(statement)
		require.NoError(t, err, "Parse(%q)", statement)
		s.Add(spec, target)
	}
}

func TestStore_MergesSameModule(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, classifier.Config{})

	add(t, s, Main, "from typing import Any", "from typing import Optional")

	groups := s.Categorized()
	req.Len(groups, 4)
	req.Equal([]Entry{{
		Category: classifier.Stdlib,
		Module:   "typing",
		Items:    []parser.Item{{Name: "Any"}, {Name: "Optional"}},
	}}, groups[classifier.Stdlib].Entries)
	req.Equal(2, s.Count())
}

func TestStore_GroupOrderIsFixed(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, classifier.Config{PackageName: "myproject"})

	add(t, s, Main,
		"from myproject.models import User",
		"from pydantic import BaseModel",
		"import os",
		"from __future__ import annotations",
	)

	groups := s.Categorized()
	req.Equal([]classifier.Category{classifier.Future, classifier.Stdlib, classifier.ThirdParty, classifier.Local},
		[]classifier.Category{groups[0].Category, groups[1].Category, groups[2].Category, groups[3].Category})
	for _, g := range groups {
		req.Len(g.Entries, 1, "group %s", g.Category)
	}
}

func TestStore_EmptyGroupsArePresent(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, classifier.Config{})

	groups := s.Categorized()
	req.Len(groups, 4)
	for _, g := range groups {
		req.True(g.IsEmpty())
	}
	req.True(s.IsEmpty())
	req.True(s.IsTypeCheckingEmpty())
	req.Zero(s.Count())
}

func TestStore_SortsCaseInsensitively(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, classifier.Config{})

	add(t, s, Main,
		"from Zeta import b",
		"from alpha import Zed, apple, Banana, AA, aa",
		"import Beta",
	)

	entries := s.Categorized()[classifier.ThirdParty].Entries
	req.Len(entries, 3)
	req.Equal("alpha", entries[0].Module)
	req.Equal("Beta", entries[1].Module)
	req.Equal("Zeta", entries[2].Module)

	names := make([]string, 0, len(entries[0].Items))
	for _, item := range entries[0].Items {
		names = append(names, item.Name)
	}
	req.Equal([]string{"AA", "aa", "apple", "Banana", "Zed"}, names)
}

func TestStore_DirectAndFromShareEntry(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, classifier.Config{})

	add(t, s, Main, "from os import path", "import os")

	entries := s.Categorized()[classifier.Stdlib].Entries
	req.Len(entries, 1)
	req.True(entries[0].Direct)
	req.Equal([]parser.Item{{Name: "path"}}, entries[0].Items)
	req.Equal(2, s.Count(), "direct import and one name")
}

func TestStore_RelativeLevelsStaySeparate(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, classifier.Config{})

	add(t, s, Main, "from .models import A", "from ..models import B", "from . import c")

	entries := s.Categorized()[classifier.Local].Entries
	req.Len(entries, 3)
	req.Equal(".", entries[0].Module)
	req.Equal("..models", entries[1].Module)
	req.Equal(".models", entries[2].Module)
}

func TestStore_AliasMerging(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, classifier.Config{})

	conflicts := s.Add(parser.ImportSpec{Module: "datetime", Items: []parser.Item{{Name: "datetime"}}}, Main)
	req.Empty(conflicts)

	// a later alias fills an absent one without conflict
	conflicts = s.Add(parser.ImportSpec{Module: "datetime", Items: []parser.Item{{Name: "datetime", Alias: "dt"}}}, Main)
	req.Empty(conflicts)

	// a later absent alias keeps the existing one
	conflicts = s.Add(parser.ImportSpec{Module: "datetime", Items: []parser.Item{{Name: "datetime"}}}, Main)
	req.Empty(conflicts)
	req.Equal([]parser.Item{{Name: "datetime", Alias: "dt"}}, s.Categorized()[classifier.Stdlib].Entries[0].Items)

	// two different aliases: last write wins and the conflict is recorded
	conflicts = s.Add(parser.ImportSpec{Module: "datetime", Items: []parser.Item{{Name: "datetime", Alias: "DateTime"}}}, Main)
	req.Equal([]Conflict{{
		Target:   Main,
		Category: classifier.Stdlib,
		Module:   "datetime",
		Name:     "datetime",
		Previous: "dt",
		Current:  "DateTime",
	}}, conflicts)
	req.Equal([]parser.Item{{Name: "datetime", Alias: "DateTime"}}, s.Categorized()[classifier.Stdlib].Entries[0].Items)
	req.Equal(conflicts, s.Conflicts())
	req.Equal(1, s.Count())
}

func TestStore_DirectAliasConflict(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, classifier.Config{})

	s.Add(parser.ImportSpec{Module: "numpy", ModuleAlias: "np"}, Main)
	s.Add(parser.ImportSpec{Module: "numpy"}, Main)
	req.Empty(s.Conflicts())

	conflicts := s.Add(parser.ImportSpec{Module: "numpy", ModuleAlias: "numeric"}, Main)
	req.Len(conflicts, 1)
	req.Equal("numpy", conflicts[0].Name)
	req.Equal("np", conflicts[0].Previous)
	req.Equal("numeric", conflicts[0].Current)

	entry := s.Categorized()[classifier.ThirdParty].Entries[0]
	req.True(entry.Direct)
	req.Equal("numeric", entry.DirectAlias)
}

func TestStore_DirectAliasReplacesPlainBinding(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, classifier.Config{})

	add(t, s, Main, "import numpy", "import numpy as np")
	req.Empty(s.Conflicts())
	req.Equal(1, s.Count())

	entry := s.Categorized()[classifier.ThirdParty].Entries[0]
	req.True(entry.Direct)
	req.Equal("np", entry.DirectAlias)
}

func TestStore_TypeCheckingIsolation(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, classifier.Config{})

	add(t, s, TypeChecking, "from httpx import Client")
	add(t, s, Main, "import json")

	req.Equal(1, s.Count())
	req.Equal(1, s.CountTypeChecking())
	for _, g := range s.Categorized() {
		for _, e := range g.Entries {
			req.NotEqual("httpx", e.Module, "type-checking imports never leak into the main section")
		}
	}

	all := s.AllCategorized()
	req.Len(all.Main, 4)
	req.Len(all.TypeChecking, 4)
	req.Equal("httpx", all.TypeChecking[classifier.ThirdParty].Entries[0].Module)

	s.ClearCache()
	req.Equal(1, s.Count(), "ClearCache keeps data")
	req.Equal(1, s.CountTypeChecking(), "ClearCache keeps data")

	s.Reset()
	req.True(s.IsEmpty())
	req.True(s.IsTypeCheckingEmpty())
	req.Empty(s.Conflicts())
}

func TestStore_ResetPurgesMemoButKeepsConfig(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, classifier.Config{PackageName: "myproject"})

	add(t, s, Main, "from myproject import models")
	req.Positive(s.Classifier().CacheLen())

	s.Reset()
	req.Zero(s.Classifier().CacheLen())

	add(t, s, Main, "from myproject import models")
	req.Len(s.Categorized()[classifier.Local].Entries, 1)
}

func TestStore_EntriesAreNotReclassified(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, classifier.Config{})

	add(t, s, Main, "from myproject import models")
	s.Classifier().SetPackageName("myproject")
	add(t, s, Main, "from myproject import views")

	groups := s.Categorized()
	req.Equal([]parser.Item{{Name: "models"}}, groups[classifier.ThirdParty].Entries[0].Items)
	req.Equal([]parser.Item{{Name: "views"}}, groups[classifier.Local].Entries[0].Items)
}

func TestStore_InsertionOrderIndependent(t *testing.T) {
	req := require.New(t)
	statements := []string{
		"from typing import Optional",
		"import sys",
		"from pydantic import Field",
		"from typing import Any",
		"from pydantic import BaseModel",
		"import os",
	}

	forward := newTestStore(t, classifier.Config{})
	add(t, forward, Main, statements...)

	backward := newTestStore(t, classifier.Config{})
	for i := len(statements) - 1; i >= 0; i-- {
		add(t, backward, Main, statements[i])
	}

	req.Equal(forward.Categorized(), backward.Categorized())
}

func TestStore_Clone(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, classifier.Config{})
	add(t, s, Main, "from typing import Any")

	c := s.Clone()
	add(t, c, Main, "from typing import TYPE_CHECKING")

	req.Equal(1, s.Count(), "clone mutations do not reach the original")
	req.Equal(2, c.Count())
	req.Same(s.Classifier(), c.Classifier())
}

func TestTarget_String(t *testing.T) {
	req := require.New(t)
	req.Equal("main", Main.String())
	req.Equal("type-checking", TypeChecking.String())
}
