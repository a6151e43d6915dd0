package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var (
	callCount   = make(map[string]int)
	callCountMu sync.Mutex
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
)

// Dir is where snapshot files are stored, relative to the package under test
const Dir = "testdata"

// ValidateSnapshot compares the JSON encoding of obj with the stored snapshot for the test
// The snapshot is written when it does not exist yet, or when UPDATE_SNAPSHOTS=1
func ValidateSnapshot(t *testing.T, obj interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	filename := nextFilename(t.Name())

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not encode snapshot: %v", err)
	}

	expects, err := os.ReadFile(filename)
	if os.IsNotExist(err) || os.Getenv("UPDATE_SNAPSHOTS") == "1" {
		if err := write(filename, objJSON); err != nil {
			t.Fatalf("could not write snapshot: %v", err)
		}

		return
	} else if err != nil {
		t.Fatalf("could not read snapshot: %v", err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
	}
}

// nextFilename returns a unique file per call within a test
func nextFilename(testName string) string {
	name := unsafeChars.ReplaceAllString(testName, "_")

	callCountMu.Lock()
	call := callCount[name]
	callCount[name] = call + 1
	callCountMu.Unlock()

	return filepath.Join(Dir, fmt.Sprintf("%s-%d.json", name, call))
}

func write(filename string, objJSON []byte) error {
	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}

	return os.WriteFile(filename, append(objJSON, '\n'), 0644)
}
