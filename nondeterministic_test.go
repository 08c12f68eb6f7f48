package semequal

import (
	"encoding/json"
	"testing"
)

// documents decoded into maps carry no key order, reports built from them must
// still be identical run to run
func TestDeterministicReport(t *testing.T) {
	left := `{"body":[["Avatar ",178],["Spectre ",148],["Tangled ",100]],"commit":{"author":{"id":"QmeL2mdV"},"message":"created dataset","timestamp":"2001-01-01T01:01:01.000000001Z","title":"created dataset"},"meta":{"qri":"md:0","title":"example movie data"},"structure":{"depth":2,"entries":3,"format":"csv","formatConfig":{"headerRow":true,"lazyQuotes":true},"schema":{"items":{"items":[{"title":"movie_title","type":"string"},{"title":"duration","type":"integer"}],"type":"array"},"type":"array"}}}`
	rite := `{"body":[["Avatar ",178],["Spectre ",148],["Tangled ",100]],"commit":{"author":{"id":"QmeL2mdV"},"message":"created dataset","timestamp":"2001-01-01T01:01:01.000000001Z","title":"created dataset"},"meta":{"qri":"md:0","title":"different title"},"structure":{"depth":2,"entries":3,"format":"csv","formatConfig":{"headerRow":true,"lazyQuotes":true},"schema":{"items":{"items":[{"title":"movie_title","type":"string"},{"title":"duration","type":"integer"}],"type":"array"},"type":"array"}}}`

	var expect string
	for k := 0; k < 200; k++ {
		var leftData, riteData interface{}
		if err := json.Unmarshal([]byte(left), &leftData); err != nil {
			t.Fatal(err)
		}
		if err := json.Unmarshal([]byte(rite), &riteData); err != nil {
			t.Fatal(err)
		}

		e, err := FromValue(leftData)
		if err != nil {
			t.Fatal(err)
		}
		a, err := FromValue(riteData)
		if err != nil {
			t.Fatal(err)
		}

		f, ok := Compare(e, a, nil).(*Failure)
		if !ok {
			t.Fatal("expected documents to differ")
		}
		if f.Path != "meta.title" {
			t.Fatalf("run %d: expected failure at meta.title, got %s", k, f.Path)
		}

		got := Render(e, a, f)
		if k == 0 {
			expect = got
		} else if got != expect {
			t.Fatalf("non-deterministic report on run %d.\nfirst:\n%s\nnow:\n%s", k, expect, got)
		}
	}
}
