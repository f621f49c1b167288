package yoke

import (
	"encoding/json"
	"testing"

	goyaml "github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

func jsonValue(t *testing.T, d []byte) any {
	t.Helper()
	var v any
	if err := json.Unmarshal(d, &v); err != nil {
		t.Fatalf("bad json %q: %v", d, err)
	}
	return v
}

func convert(t *testing.T, in string, opts ...Option) any {
	t.Helper()
	j, err := YAMLToJSON([]byte(in), opts...)
	if err != nil {
		t.Fatalf("convert %q: %v", in, err)
	}
	return jsonValue(t, j)
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "booleans and yes/no",
			in:   "a: true\nb: yes\nc: no\n",
			want: `{"a": true, "b": true, "c": false}`,
		},
		{
			name: "literal vs folded",
			in:   "a: |\n  one\n  two\nb: >\n  one\n  two\n",
			want: `{"a": "one\ntwo\n", "b": "one two\n"}`,
		},
		{
			name: "scalar anchor",
			in:   "base: &x 42\nother: *x\n",
			want: `{"base": 42, "other": 42}`,
		},
		{
			name: "merge with override",
			in:   "defaults: &d\n  a: 1\n  b: 2\nitem:\n  <<: *d\n  b: 99\n",
			want: `{"defaults": {"a": 1, "b": 2}, "item": {"a": 1, "b": 99}}`,
		},
		{
			name: "flow sequence",
			in:   "arr: [1, , {k: v}, 3]\n",
			want: `{"arr": [1, null, {"k": "v"}, 3]}`,
		},
		{
			name: "binary",
			in:   "icon: !!binary SGk=\n",
			want: `{"icon": [72, 105]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convert(t, tt.in)
			want := jsonValue(t, []byte(tt.want))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("(-want +got)\n%s", diff)
			}
		})
	}
}

func TestTagOverride(t *testing.T) {
	got := convert(t, "a: !!str 42\n")
	want := jsonValue(t, []byte(`{"a": "42"}`))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestYesNoOff(t *testing.T) {
	got := convert(t, "b: yes\n", WithYesNoBool(false))
	want := jsonValue(t, []byte(`{"b": "yes"}`))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

// yaml_to_json(json_to_yaml(yaml_to_json(x))) == yaml_to_json(x)
func TestYAMLIdempotence(t *testing.T) {
	ins := []string{
		"a: 1\nb: two\nc:\n  - x\n  - y\n",
		"a: |\n  one\n  two\nb: >\n  folded text\n",
		"base: &x 42\nother: *x\n",
		"defaults: &d\n  a: 1\n  b: 2\nitem:\n  <<: *d\n  b: 99\n",
		"arr: [1, , {k: v}, 3]\n",
		"s: \" spaced \"\nq: 'single'\n",
		"n:\nm: null\n",
		"deep:\n  deeper:\n    deepest:\n      - 1\n      - k: v\n",
	}
	for _, in := range ins {
		j1, err := YAMLToJSON([]byte(in))
		if err != nil {
			t.Errorf("first pass %q: %v", in, err)
			continue
		}
		y1, err := JSONToYAML(j1)
		if err != nil {
			t.Errorf("to yaml %q: %v", in, err)
			continue
		}
		j2, err := YAMLToJSON(y1)
		if err != nil {
			t.Errorf("second pass %q (yaml %q): %v", in, y1, err)
			continue
		}
		if diff := cmp.Diff(jsonValue(t, j1), jsonValue(t, j2)); diff != "" {
			t.Errorf("%q not idempotent (-first +second)\n%s\nintermediate yaml:\n%s", in, diff, y1)
		}
	}
}

// json_parse(yaml_to_json(json_to_yaml(v))) == v
func TestJSONRoundTrip(t *testing.T) {
	ins := []string{
		`{"a": [1, 2.5, "x", true, null], "b": {"c": "multi\nline\n"}, "d": "yes", "e": ""}`,
		`{"empty": {}, "list": [], "zero": 0, "neg": -3}`,
		`[1, "two", {"three": 3}]`,
		`"scalar"`,
		`null`,
		`{"k": "a string that goes on long enough to be folded across several output lines by the yaml emitter when it exceeds the wrap width"}`,
	}
	for _, in := range ins {
		y, err := JSONToYAML([]byte(in))
		if err != nil {
			t.Errorf("to yaml %q: %v", in, err)
			continue
		}
		j, err := YAMLToJSON(y)
		if err != nil {
			t.Errorf("back to json %q (yaml %q): %v", in, y, err)
			continue
		}
		if diff := cmp.Diff(jsonValue(t, []byte(in)), jsonValue(t, j)); diff != "" {
			t.Errorf("%q did not round-trip (-want +got)\n%s\nintermediate yaml:\n%s", in, diff, y)
		}
	}
}

func TestEscapePreservation(t *testing.T) {
	in := "a: \"x\\b\\t\\n\\f\\r\\\"\\\\y\\u0085\\u2028\\u2029\"\n"
	want := "x\b\t\n\f\r\"\\y\u0085\u2028\u2029"
	v, err := YAMLToJSONValue([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	got := v.(map[string]any)["a"].(string)
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	y, err := ValueToYAML(map[string]any{"a": got})
	if err != nil {
		t.Fatal(err)
	}
	v2, err := YAMLToJSONValue(y)
	if err != nil {
		t.Fatalf("reparse %q: %v", y, err)
	}
	if got2 := v2.(map[string]any)["a"].(string); got2 != want {
		t.Fatalf("after round-trip got %q, want %q", got2, want)
	}
}

func TestIndentWidths(t *testing.T) {
	j, err := YAMLToJSON([]byte("a: 1\n"), WithIndent(0))
	if err != nil {
		t.Fatal(err)
	}
	if string(j) != "{\"a\":1}\n" {
		t.Errorf("compact: %q", j)
	}
	if _, err := YAMLToJSON([]byte("a: 1\n"), WithIndent(9)); err == nil {
		t.Error("indent 9 accepted for json")
	}
	if _, err := JSONToYAML([]byte(`{"a": 1}`), WithIndent(1)); err == nil {
		t.Error("indent 1 accepted for yaml")
	}
}

func TestQuery(t *testing.T) {
	doc := []byte("spec:\n  replicas: 3\n  names:\n    - a\n    - b\n")
	res, err := Query(doc, "doc.spec.replicas")
	if err != nil {
		t.Fatal(err)
	}
	if res != float64(3) {
		t.Errorf("got %v (%T), want 3", res, res)
	}
	res, err = Query(doc, "len(doc.spec.names)")
	if err != nil {
		t.Fatal(err)
	}
	if res != 2 {
		t.Errorf("got %v (%T), want 2", res, res)
	}
}

func TestDiff(t *testing.T) {
	a := []byte("a: 1\nb: 2\n")
	b := []byte("a: 1\nb: 3\nc: 4\n")
	deltas, err := Diff(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(deltas) != 2 {
		t.Fatalf("got %d deltas: %v", len(deltas), deltas)
	}
	if deltas[0].Path != "$.b" || deltas[1].Path != "$.c" {
		t.Errorf("paths: %s, %s", deltas[0].Path, deltas[1].Path)
	}
	same, err := Diff(a, a)
	if err != nil {
		t.Fatal(err)
	}
	if len(same) != 0 {
		t.Errorf("self-diff: %v", same)
	}
}

func TestPatch(t *testing.T) {
	doc := []byte("a: 1\nb:\n  c: 2\n")
	patch := []byte("b:\n  c: 9\nd: 4\n")
	out, err := Patch(doc, patch)
	if err != nil {
		t.Fatal(err)
	}
	got := convert(t, string(out))
	want := jsonValue(t, []byte(`{"a": 1, "b": {"c": 9}, "d": 4}`))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

// parity with a production YAML parser on the shared subset
func TestGoccyParity(t *testing.T) {
	ins := []string{
		"a: 1\nb: hello\n",
		"c:\n  - 1\n  - 2\nd:\n  e: true\n",
		"s: \"quoted\"\nt: 'single'\n",
		"arr: [1, 2, 3]\n",
	}
	for _, in := range ins {
		var ref any
		if err := goyaml.Unmarshal([]byte(in), &ref); err != nil {
			t.Fatalf("reference parser %q: %v", in, err)
		}
		refJSON, err := json.Marshal(ref)
		if err != nil {
			t.Fatal(err)
		}
		got := convert(t, in, WithYesNoBool(false))
		if diff := cmp.Diff(jsonValue(t, refJSON), got); diff != "" {
			t.Errorf("%q differs from reference (-ref +got)\n%s", in, diff)
		}
	}
}
