package jsdoc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoclets = `[
  {"name": "testFunc", "longname": "MyClass#testFunc", "kind": "function", "memberof": "MyClass",
   "params": [
     {"name": "paramX", "type": {"names": ["string"]}, "optional": true},
     {"name": "paramY", "defaultvalue": 0, "nullable": "yes"}
   ],
   "returns": [{"type": {"names": ["Object"]}, "description": "The result."}]},
  {"name": "changed", "longname": "MyClass#event:changed", "kind": "event", "memberof": "MyClass",
   "returns": {"type": {"names": ["boolean"]}}},
  {"name": "MyClass", "longname": "MyClass", "kind": "class", "classdesc": "A class.", "augments": ["Base"]},
  {"name": "helper", "longname": "helper", "kind": "function", "undocumented": true}
]`

func TestDecode(t *testing.T) {
	records, err := Decode(strings.NewReader(sampleDoclets))
	require.NoError(t, err)
	require.Len(t, records, 4)

	fn := records[0]
	assert.Equal(t, "MyClass", fn.MemberOf)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "true", string(fn.Params[0].Optional))
	assert.False(t, fn.Params[0].HasDefault())
	assert.Nil(t, fn.Params[0].Default())
	assert.True(t, fn.Params[1].HasDefault())
	assert.Equal(t, float64(0), fn.Params[1].Default())
	require.Len(t, fn.Returns, 1)
	assert.Equal(t, []string{"Object"}, fn.Returns[0].Type.Names)

	ev := records[1]
	require.Len(t, ev.Returns, 1, "single returns object is accepted")
	assert.Equal(t, []string{"boolean"}, ev.Returns[0].Type.Names)

	assert.Equal(t, []string{"Base"}, records[2].Augments)
	assert.True(t, records[3].Undocumented)
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"name":`))
	assert.Error(t, err)
}

func TestDocumentedAndSortByName(t *testing.T) {
	records, err := Decode(strings.NewReader(sampleDoclets))
	require.NoError(t, err)

	kept := Documented(records)
	require.Len(t, kept, 3)

	kept = append(kept, Record{Name: "MyClass", Longname: "second"})
	SortByName(kept)
	var order []string
	for _, rec := range kept {
		order = append(order, rec.Longname)
	}
	assert.Equal(t, []string{"MyClass", "second", "MyClass#event:changed", "MyClass#testFunc"}, order)
}

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
}

func TestLocateWalksParents(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX executable name")
	}
	root := t.TempDir()
	exe := filepath.Join(root, "node_modules", ".bin", "jsdoc")
	writeScript(t, exe, "exit 0\n")
	nested := filepath.Join(root, "src", "lib")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := Locate(nested)
	require.NoError(t, err)
	assert.Equal(t, exe, got)
}

func TestLocateNotFound(t *testing.T) {
	t.Setenv("PATH", "")
	_, err := Locate(t.TempDir())
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestExtractRunsTool(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the extractor")
	}
	dir := t.TempDir()
	exe := filepath.Join(dir, "jsdoc")
	writeScript(t, exe, `echo '[{"name":"a","longname":"a","kind":"member"}]'`+"\n")

	x := &Extractor{Path: exe}
	records, err := x.Extract(context.Background(), []string{"a.js"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "member", records[0].Kind)
}

func TestExtractSurfacesFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the extractor")
	}
	dir := t.TempDir()
	exe := filepath.Join(dir, "jsdoc")
	writeScript(t, exe, "echo 'There are no input files to process.' >&2\nexit 3\n")

	x := &Extractor{Path: exe}
	_, err := x.Extract(context.Background(), []string{"a.js"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolFailure)

	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, 3, toolErr.ExitCode)
	assert.Contains(t, toolErr.Error(), "There are no input files to process.")
}

func TestExtractWithoutFilesSkipsTool(t *testing.T) {
	x := &Extractor{Path: filepath.Join(t.TempDir(), "missing")}
	records, err := x.Extract(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}
