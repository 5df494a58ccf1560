package stickers

import (
	"errors"
	"fmt"
	"strings"
)

var validDPIs = map[int]bool{300: true, 450: true, 600: true, 900: true}

func ValidateSettings(s Settings) error {
	if s.SizeCM < 2.0 || s.SizeCM > 20.0 {
		return errors.New("size_cm must be between 2 and 20")
	}
	if s.LogoScalePct < 10 || s.LogoScalePct > 40 {
		return errors.New("logo_scale_pct must be between 10 and 40")
	}
	if s.CutoutPaddingPct < 100 || s.CutoutPaddingPct > 160 {
		return errors.New("cutout_padding_pct must be between 100 and 160")
	}
	if s.SerialWidthPct < 20 || s.SerialWidthPct > 80 {
		return errors.New("serial_width_pct must be between 20 and 80")
	}
	if !validDPIs[s.DPI] {
		return errors.New("dpi must be one of 300, 450, 600, 900")
	}
	if s.BoxSize < 10 || s.BoxSize > 40 {
		return errors.New("box_size must be between 10 and 40")
	}
	if s.BorderModules < 0 || s.BorderModules > 8 {
		return errors.New("border_modules must be between 0 and 8")
	}

	switch s.ErrorCorrection {
	case "L", "M", "Q", "H":
	default:
		return errors.New("error_correction must be one of L, M, Q, H")
	}

	return nil
}

// ValidateJobs rejects batches whose serials cannot name archive entries
// unambiguously: duplicates would overwrite each other in the ZIP and path
// separators would nest entries.
func ValidateJobs(jobs []Job) error {
	seen := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		if strings.ContainsAny(job.Serial, `/\`) {
			return fmt.Errorf("serial %q contains a path separator", job.Serial)
		}
		if seen[job.Serial] {
			return fmt.Errorf("duplicate serial %q", job.Serial)
		}
		seen[job.Serial] = true
	}
	return nil
}
