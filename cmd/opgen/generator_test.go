package main

import (
	"math"
	"os"
	"strings"
	"testing"
)

func TestZuckerHummel(t *testing.T) {
	table := zuckerHummel()
	if len(table.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(table.Rows))
	}
	for axis, row := range table.Rows {
		if len(row) != 27 {
			t.Fatalf("axis %d: got %d coefficients, want 27", axis, len(row))
		}
		var sum float64
		for _, v := range row {
			sum += v
		}
		if math.Abs(sum) > 1e-12 {
			t.Errorf("axis %d: coefficients sum to %v, want 0", axis, sum)
		}
		// The center of the face in the positive axis direction.
		stride := [3]int{1, 3, 9}[axis]
		if got := row[13+stride]; got != 1 {
			t.Errorf("axis %d: face center = %v, want 1", axis, got)
		}
		if got := row[13-stride]; got != -1 {
			t.Errorf("axis %d: opposite face center = %v, want -1", axis, got)
		}
	}
	if got, want := table.Rows[0][26], math.Sqrt(3)/3; got != want {
		t.Errorf("corner coefficient = %v, want %v", got, want)
	}
}

func TestRender(t *testing.T) {
	src, err := Render("table.go", "example", Table{
		Name:     "kernels",
		Doc:      []string{"kernels holds two test rows."},
		Rows:     [][]float64{{-0.5, 0, 0.5}, {1, -2, 1}},
		LineSize: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `// Code generated by opgen. DO NOT EDIT.

package example

// kernels holds two test rows.
var kernels = [2][3]float64{
	{
		-0.5, 0,
		0.5,
	},
	{
		1, -2,
		1,
	},
}
`
	if string(src) != want {
		t.Errorf("Render output:\n%s\nwant:\n%s", src, want)
	}
}

func TestRender_Invalid(t *testing.T) {
	if _, err := Render("t.go", "p", Table{Name: "empty"}); err == nil {
		t.Error("Render of an empty table should fail")
	}
	if _, err := Render("t.go", "p", Table{Name: "ragged", Rows: [][]float64{{1}, {1, 2}}}); err == nil {
		t.Error("Render of a ragged table should fail")
	}
}

// The checked-in table must match what opgen produces.
func TestGeneratedTableUpToDate(t *testing.T) {
	const path = "../../hwy/contrib/neighborhood/zucker_hummel_table.go"
	have, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	src, err := Render(path, "neighborhood", zuckerHummel())
	if err != nil {
		t.Fatal(err)
	}
	if string(have) != string(src) {
		t.Errorf("%s is stale; run go generate ./hwy/contrib/neighborhood", path)
	}
	if !strings.Contains(string(src), "var zuckerHummelTables = [3][27]float64{") {
		t.Errorf("generated source lacks the table declaration:\n%s", src)
	}
}

func TestAvailableOps(t *testing.T) {
	ops := availableOps()
	if len(ops) == 0 || ops[0] != "zucker-hummel" {
		t.Errorf("availableOps() = %v", ops)
	}
}
