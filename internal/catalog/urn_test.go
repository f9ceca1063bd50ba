package catalog

import (
	"testing"
)

func TestParseURN(t *testing.T) {
	tests := []struct {
		urn      string
		wantType EntityType
		wantID   string
		wantErr  bool
	}{
		{"urn:li:dataset:(urn:li:dataPlatform:hive,db.tbl,PROD)", TypeDataset, "(urn:li:dataPlatform:hive,db.tbl,PROD)", false},
		{"urn:li:tag:pii", TypeTag, "pii", false},
		{"urn:li:corpuser:jdoe", "corpuser", "jdoe", false},
		{"urn:li:dashboard:(looker,dashboards.1)", TypeDashboard, "(looker,dashboards.1)", false},
		{"li:dataset:x", "", "", true},
		{"urn:li:dataset", "", "", true},
		{"urn:li::x", "", "", true},
		{"", "", "", true},
	}
	for _, tc := range tests {
		u, err := ParseURN(tc.urn)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseURN(%q) succeeded, want error", tc.urn)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseURN(%q) failed: %v", tc.urn, err)
			continue
		}
		if u.EntityType != tc.wantType || u.ID != tc.wantID {
			t.Errorf("ParseURN(%q) = (%q, %q), want (%q, %q)", tc.urn, u.EntityType, u.ID, tc.wantType, tc.wantID)
		}
	}
}

func TestMakeURNRoundTrip(t *testing.T) {
	urn := MakeURN(TypeDataset, "(urn:li:dataPlatform:hive,db.tbl,PROD)")
	u, err := ParseURN(urn)
	if err != nil {
		t.Fatalf("ParseURN failed: %v", err)
	}
	if u.String() != urn {
		t.Errorf("round trip: got %q, want %q", u.String(), urn)
	}
}
