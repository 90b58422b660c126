/*
NAME
  stats_test.go

DESCRIPTION
  stats_test.go tests the Stats diagnostic summary over a produced
  SPLAT buffer.

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

package convert

import "testing"

func TestStatsEmptyBuffer(t *testing.T) {
	out, n, err := ConvertBytesToBytes([]byte("ply\nformat ascii 1.0\nelement vertex 0\n"+
		"property float x\nproperty float y\nproperty float z\n"+
		"property float scale_0\nproperty float scale_1\nproperty float scale_2\n"+
		"property float rot_0\nproperty float rot_1\nproperty float rot_2\nproperty float rot_3\n"+
		"property float opacity\n"+
		"property float f_dc_0\nproperty float f_dc_1\nproperty float f_dc_2\n"+
		"end_header\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("count = %d, want 0", n)
	}

	buf, err := LoadSplatsFromSplat(writeTemp(t, out))
	if err != nil {
		t.Fatal(err)
	}
	s := Stats(buf)
	if s != (Summary{}) {
		t.Errorf("Stats(empty) = %+v, want zero value", s)
	}
}

func TestStatsSingleSplat(t *testing.T) {
	out, _, err := ConvertBytesToBytes(s1PLY(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	buf, err := LoadSplatsFromSplat(writeTemp(t, out))
	if err != nil {
		t.Fatal(err)
	}
	s := Stats(buf)
	if s.Count != 1 {
		t.Fatalf("Count = %d, want 1", s.Count)
	}
	if s.MinImportance != s.MaxImportance {
		t.Errorf("single-point summary should have Min == Max, got %v vs %v", s.MinImportance, s.MaxImportance)
	}
	want := [3]float64{1, 2, 3}
	if s.CenterOfMass != want {
		t.Errorf("CenterOfMass = %v, want %v", s.CenterOfMass, want)
	}
}

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	f, err := createTempFile(t, data)
	if err != nil {
		t.Fatal(err)
	}
	return f
}
