package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

// quoterSpecJSON is a spec exercising every generated form: named and typed
// injection, declared fields, depends-on, configuration beans and fallible methods.
func quoterSpecJSON() []byte {
	return []byte(`{
  "package": "quoter",
  "imports": [ { "path": "fmt" }, { "alias": "zlog", "path": "go.uber.org/zap" } ],
  "components": [
    { "name": "hp", "type": "HarryPotterQuoter", "constructor": "NewHarryPotterQuoter" },
    { "type": "Reader",
      "fields": [ { "field": "quoter", "type": "Quoter", "inject": true, "ref": "hp" } ] },
    { "type": "Library", "dependsOn": ["quoter.Reader"],
      "fields": [
        { "field": "reader", "type": "*Reader" },
        { "field": "quoter", "type": "Quoter", "inject": true }
      ] }
  ],
  "configurations": [
    { "type": "QuoterConfig", "constructor": "NewQuoterConfig", "constructorReturnsError": true,
      "beans": [
        { "method": "Dune", "returns": "Quoter" },
        { "name": "shelf", "method": "Shelf", "returns": "*Shelf", "returnsError": true,
          "implType": "Shelf", "dependsOn": ["quoter.Reader"],
          "fields": [ { "field": "reader", "type": "*Reader" } ] }
      ] }
  ]
}`)
}

// writeTempFile writes a file under dir/name and returns its full path.
func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// readFileString reads a file and returns its contents as string (fatal on error).
func readFileString(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

// requirePanicContains asserts fn panics and the panic message contains wantSub.
func requirePanicContains(t *testing.T, wantSub string, fn func()) {
	t.Helper()

	defer func() {
		recovered := recover()
		require.NotNil(t, recovered)

		var message string
		switch v := recovered.(type) {
		case error:
			message = v.Error()
		case string:
			message = v
		default:
			message = fmt.Sprintf("%v", v)
		}
		require.Contains(t, message, wantSub)
	}()

	fn()
}

//
// -----------------------------------------------------------------------------
// writeFileAtomic() seam helpers
// -----------------------------------------------------------------------------

// fakeTempFile is a controllable file-like object for writeFileAtomic tests.
type fakeTempFile struct {
	fileName string
	writeErr error
	closeErr error
}

func (f *fakeTempFile) Name() string { return f.fileName }

func (f *fakeTempFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(p), nil
}

func (f *fakeTempFile) Close() error { return f.closeErr }

// restoreWriteSeams puts the original file seams back when the test ends.
func restoreWriteSeams(t *testing.T) {
	t.Helper()
	origCreate, origRemove, origChmod, origRename := createTempFile, removeFile, chmodFile, renameFile
	t.Cleanup(func() {
		createTempFile, removeFile, chmodFile, renameFile = origCreate, origRemove, origChmod, origRename
	})
}
