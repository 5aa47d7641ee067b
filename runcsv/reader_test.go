package runcsv

import (
	"reflect"
	"strings"
	"testing"
)

func TestReaderRunFile(t *testing.T) {
	in := `function,consistency,controllers,max_depth,duration_ms,total_states,unique_states,max_depth_reached,done
deployment,causal,2,10,125.5,1000,800,7,false
deployment,causal,2,10,250,2500,1900,9,true
`
	r := NewReader(strings.NewReader(in), "deployment-causal.csv")
	want := []RunResult{
		{Function: "deployment", Consistency: "causal", Controllers: 2, DepthLimit: 10,
			DurationMS: 125.5, TotalStates: 1000, UniqueStates: 800, MaxDepth: 7},
		{Function: "deployment", Consistency: "causal", Controllers: 2, DepthLimit: 10,
			DurationMS: 250, TotalStates: 2500, UniqueStates: 1900, MaxDepth: 9, Done: true},
	}
	var got []RunResult
	for r.Scan() {
		res, ok := r.Result().(*RunResult)
		if !ok {
			t.Fatalf("unexpected record %v", r.Result())
		}
		got = append(got, *res)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	for i := range got {
		got[i].File, got[i].fileName, got[i].line = "", "", 0
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

// The older harness wrote the measured depth in a column named
// max_depth, with no depth-limit column. A lone max_depth column
// must map to MaxDepth, not DepthLimit.
func TestReaderDepthAlias(t *testing.T) {
	in := `total_states,unique_states,max_depth,duration_ms,done
42,40,5,10,true
`
	r := NewReader(strings.NewReader(in), "run.csv")
	if !r.Scan() {
		t.Fatalf("Scan failed: %v", r.Err())
	}
	res := r.Result().(*RunResult)
	if res.MaxDepth != 5 || res.DepthLimit != 0 {
		t.Errorf("got MaxDepth=%d DepthLimit=%d, want MaxDepth=5 DepthLimit=0", res.MaxDepth, res.DepthLimit)
	}
}

func TestReaderDepthFile(t *testing.T) {
	in := `consistency,controllers,max_depth,depth,count
synchronous,1,10,3,120
`
	r := NewReader(strings.NewReader(in), "deployment-depths-synchronous.csv")
	if !r.Scan() {
		t.Fatalf("Scan failed: %v", r.Err())
	}
	res, ok := r.Result().(*DepthResult)
	if !ok {
		t.Fatalf("got record type %T, want *DepthResult", r.Result())
	}
	if res.Consistency != "synchronous" || res.Depth != 3 || res.Count != 120 || res.DepthLimit != 10 {
		t.Errorf("unexpected record %+v", res)
	}
}

func TestReaderBadHeader(t *testing.T) {
	check := func(name, in, wantErr string) {
		t.Helper()
		r := NewReader(strings.NewReader(in), name)
		if r.Scan() {
			t.Errorf("%s: Scan succeeded, want header error", name)
			return
		}
		err := r.Err()
		if err == nil {
			t.Errorf("%s: got success, want error %q", name, wantErr)
		} else if !strings.Contains(err.Error(), wantErr) {
			t.Errorf("%s: got error %q, want %q", name, err, wantErr)
		}
	}

	check("run.csv", "", "missing header row")
	check("run.csv", "duration_ms,bogus\n", `unknown column "bogus"`)
	check("run.csv", "duration_ms,duration_ms\n", `duplicate column "duration_ms"`)
	check("run.csv", "total_states\n", `missing required column "duration_ms"`)
	check("a-depths.csv", "depth\n", `missing required column "count"`)
}

func TestReaderBadRow(t *testing.T) {
	in := `duration_ms,total_states
10,100
oops,200
20,300
`
	r := NewReader(strings.NewReader(in), "run.csv")
	var kinds []string
	for r.Scan() {
		switch rec := r.Result().(type) {
		case *RunResult:
			kinds = append(kinds, "run")
		case *SyntaxError:
			if _, line := rec.Pos(); line != 3 {
				t.Errorf("syntax error at line %d, want 3", line)
			}
			kinds = append(kinds, "err")
		}
	}
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := []string{"run", "err", "run"}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("got records %v, want %v", kinds, want)
	}
}

func TestIsDepthFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"deployment-causal.csv", false},
		{"deployment-causal-depths.csv", true},
		{"testout/deployment-depths-2-10.csv", true},
		{"depths.csv", false},
		{"x-depths", true},
	}
	for _, test := range tests {
		if got := IsDepthFile(test.path); got != test.want {
			t.Errorf("IsDepthFile(%q) = %v, want %v", test.path, got, test.want)
		}
	}
}
