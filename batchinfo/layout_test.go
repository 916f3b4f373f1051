package batchinfo

import (
	"errors"
	"testing"
)

func TestEditorPBSRTTLayout(t *testing.T) {
	info, err := Parse("XPE2_P5_R10_Rep2")
	if err != nil {
		t.Error(err)
	}
	if info.Editor.String != "PE2" ||
		info.PBS != 5 ||
		info.RTT != 10 ||
		info.Replicate != 2 ||
		info.Drug.Valid {
		t.Errorf("Mismatch: %+v", info)
	}
}

func TestEditorRTTPBSLayout(t *testing.T) {
	info, err := Parse("XPE2_R10_P5_Rep2")
	if err != nil {
		t.Error(err)
	}
	if info.Editor.String != "PE2" ||
		info.PBS != 5 ||
		info.RTT != 10 ||
		info.Replicate != 2 {
		t.Errorf("Mismatch: %+v", info)
	}
}

func TestEditorlessLayouts(t *testing.T) {
	info, err := Parse("X_P5_R10_Rep2")
	if err != nil {
		t.Error(err)
	}
	if info.Editor.Valid ||
		info.PBS != 5 ||
		info.RTT != 10 ||
		info.Replicate != 2 {
		t.Errorf("Mismatch: %+v", info)
	}

	info, err = Parse("X_R10_P5_Rep2")
	if err != nil {
		t.Error(err)
	}
	if info.Editor.Valid || info.PBS != 5 || info.RTT != 10 {
		t.Errorf("Mismatch: %+v", info)
	}
}

func TestDrugRepLayout(t *testing.T) {
	info, err := Parse("X_PE2_P5R10_drugA_Rep3")
	if err != nil {
		t.Error(err)
	}
	if info.Editor.String != "PE2" ||
		info.PBS != 5 ||
		info.RTT != 10 ||
		info.Drug.String != "drugA" ||
		info.Replicate != 3 {
		t.Errorf("Mismatch: %+v", info)
	}
}

func TestDrugLayoutDefaultsReplicate(t *testing.T) {
	info, err := Parse("X_PE2_P5R10_drugA")
	if err != nil {
		t.Error(err)
	}
	if info.Editor.String != "PE2" ||
		info.PBS != 5 ||
		info.RTT != 10 ||
		info.Drug.String != "drugA" ||
		info.Replicate != 1 {
		t.Errorf("Mismatch: %+v", info)
	}
}

func TestControlDrugCodeMeansNoDrug(t *testing.T) {
	for _, name := range []string{"X_PE2_P5R10_ctrl", "X_PE2_P5R10_CTRL", "X_PE2_P5R10_Ctrl_Rep2"} {
		info, err := Parse(name)
		if err != nil {
			t.Error(err)
		}
		if info.Drug.Valid {
			t.Errorf("%s: expected null drug, got %q", name, info.Drug.String)
		}
	}
}

func TestUnrecognizedName(t *testing.T) {
	for _, name := range []string{"", "garbage", "P5_R10", "X_P5R10_Rep2"} {
		if _, err := Parse(name); !errors.Is(err, ErrUnrecognizedBatchName) {
			t.Errorf("%q: expected ErrUnrecognizedBatchName, got %v", name, err)
		}
	}
}

func TestLayoutPriorityPrefersEditorForms(t *testing.T) {
	// A name carrying an editor must never fall through to the editor-less
	// fallbacks even though those would also match structurally.
	info, err := Parse("HEKPE2max_P13_R20_rep1")
	if err != nil {
		t.Error(err)
	}
	if info.Editor.String != "PE2max" || info.PBS != 13 || info.RTT != 20 || info.Replicate != 1 {
		t.Errorf("Mismatch: %+v", info)
	}
}
