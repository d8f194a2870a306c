// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/divarvel/dhall-lang/lib/cborvalue"
	"github.com/divarvel/dhall-lang/lib/dhall/ast"
	"github.com/divarvel/dhall-lang/lib/dhall/cborcodec"
)

func encodeFixture(t *testing.T, e ast.Expr) []byte {
	t.Helper()
	data, err := cborvalue.EncodeBytes(cborcodec.Encode(e))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return data
}

func TestDecodeToJSON(t *testing.T) {
	fixture := &ast.Lambda{
		Name:   "x",
		Domain: &ast.Builtin{Name: "Natural"},
		Body:   ast.NewVariable("x", big.NewInt(0)),
	}
	data := encodeFixture(t, fixture)

	var output bytes.Buffer
	if err := decodeToJSON(data, &output, false, false); err != nil {
		t.Fatalf("decodeToJSON: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(output.String())), &got); err != nil {
		t.Fatalf("parse output JSON: %v (output was %q)", err, output.String())
	}

	if got["type"] != "Lambda" {
		t.Errorf("type = %v, want Lambda", got["type"])
	}
	if got["name"] != "x" {
		t.Errorf("name = %v, want x", got["name"])
	}
}

func TestDecodeToJSONCompactHasNoNewlines(t *testing.T) {
	data := encodeFixture(t, &ast.NaturalLiteral{Value: big.NewInt(42)})

	var output bytes.Buffer
	if err := decodeToJSON(data, &output, true, false); err != nil {
		t.Fatalf("decodeToJSON: %v", err)
	}
	got := strings.TrimSpace(output.String())
	if strings.Contains(got, "\n") {
		t.Errorf("compact output contains a newline: %q", got)
	}
}

func TestDecodeToJSONRendersBigIntAsString(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 64) // 2^64, exceeds JSON number precision
	data := encodeFixture(t, &ast.NaturalLiteral{Value: huge})

	var output bytes.Buffer
	if err := decodeToJSON(data, &output, true, false); err != nil {
		t.Fatalf("decodeToJSON: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(output.String())), &got); err != nil {
		t.Fatalf("parse output JSON: %v", err)
	}
	if got["value"] != huge.String() {
		t.Errorf("value = %v, want %s", got["value"], huge.String())
	}
}

func TestDecodeToJSONEmptyInput(t *testing.T) {
	var output bytes.Buffer
	if err := decodeToJSON(nil, &output, false, false); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestDecodeToJSONColorizedContainsEscapeCodes(t *testing.T) {
	data := encodeFixture(t, &ast.NaturalLiteral{Value: big.NewInt(42)})

	var output bytes.Buffer
	if err := decodeToJSON(data, &output, true, true); err != nil {
		t.Fatalf("decodeToJSON: %v", err)
	}
	if !strings.Contains(output.String(), "\x1b[") {
		t.Errorf("colorized output has no ANSI escape codes: %q", output.String())
	}
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		mode    string
		want    bool
		wantErr bool
	}{
		{mode: "always", want: true},
		{mode: "never", want: false},
		{mode: "bogus", wantErr: true},
	}
	for _, tt := range tests {
		got, err := resolveColor(tt.mode)
		if tt.wantErr {
			if err == nil {
				t.Errorf("resolveColor(%q): expected error", tt.mode)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolveColor(%q): %v", tt.mode, err)
		}
		if got != tt.want {
			t.Errorf("resolveColor(%q) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}
