package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const runA = `function,consistency,controllers,max_depth,duration_ms,total_states,unique_states,max_depth_reached,done
deployment,causal,2,10,50,100,90,3,false
deployment,causal,2,10,100,900,700,5,false
deployment,synchronous,2,10,50,40,40,2,false
`

const runB = `function,consistency,controllers,max_depth,duration_ms,total_states,unique_states,max_depth_reached,done
deployment,causal,2,10,150,2500,1800,7,true
deployment,synchronous,2,10,100,90,90,3,true
deployment,synchronous,2,10,150,95,95,3,true
`

const depthA = `consistency,controllers,max_depth,depth,count
causal,2,10,1,3
causal,2,10,2,9
synchronous,2,10,1,2
`

func writeInput(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range map[string]string{
		"deployment-a.csv":        runA,
		"deployment-b.csv":        runB,
		"deployment-a-depths.csv": depthA,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0666); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestGenerate(t *testing.T) {
	in := writeInput(t)
	out := filepath.Join(t.TempDir(), "plots")
	err := Generate(Config{InputDir: in, OutDir: out, ExpectedConsistencies: 2})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Every chart in the fixed set must exist and be non-empty.
	want := []string{
		"states-deployment-a.svg", "depth-deployment-a.svg",
		"states-deployment-b.svg", "depth-deployment-b.svg",
		"depths-deployment-a-depths.svg",
		"all-states.svg", "states-ecdf.svg", "states-box.svg", "states-strip.svg",
		"depths-all.svg", "depth-counts-box.svg", "depth-counts-strip.svg",
		"index.html",
	}
	for _, name := range want {
		fi, err := os.Stat(filepath.Join(out, name))
		if err != nil {
			t.Errorf("missing output %s: %v", name, err)
			continue
		}
		if fi.Size() == 0 {
			t.Errorf("output %s is empty", name)
		}
	}

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	for _, frag := range []string{"causal", "synchronous", "states-box.svg"} {
		if !strings.Contains(string(index), frag) {
			t.Errorf("index.html does not mention %q", frag)
		}
	}
}

func TestGenerateEmptyDir(t *testing.T) {
	err := Generate(Config{InputDir: t.TempDir(), OutDir: t.TempDir()})
	if err == nil {
		t.Fatal("got success for empty input directory, want error")
	}
	if !strings.Contains(err.Error(), "no result files") {
		t.Errorf("unexpected error %q", err)
	}
}

func TestGenerateMissingDir(t *testing.T) {
	err := Generate(Config{InputDir: filepath.Join(t.TempDir(), "missing"), OutDir: t.TempDir()})
	if err == nil {
		t.Fatal("got success for missing input directory, want error")
	}
}

func TestGenerateCardinality(t *testing.T) {
	in := writeInput(t)
	// The input spans two models; demanding the full known set
	// must fail before any chart is written.
	out := filepath.Join(t.TempDir(), "plots")
	err := Generate(Config{InputDir: in, OutDir: out})
	if err == nil {
		t.Fatal("got success, want cardinality error")
	}
	if !strings.Contains(err.Error(), "consistency models") {
		t.Errorf("unexpected error %q", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("output directory was created despite failed check")
	}
}

func TestGenerateBadRow(t *testing.T) {
	in := t.TempDir()
	bad := "duration_ms,total_states\n10,oops\n"
	if err := os.WriteFile(filepath.Join(in, "run.csv"), []byte(bad), 0666); err != nil {
		t.Fatal(err)
	}
	err := Generate(Config{InputDir: in, OutDir: t.TempDir(), ExpectedConsistencies: -1})
	if err == nil {
		t.Fatal("got success for malformed input, want error")
	}
	if !strings.Contains(err.Error(), "run.csv") {
		t.Errorf("error %q does not name the bad file", err)
	}
}
