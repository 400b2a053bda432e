package ui

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/mos1128/scoop-easy/pkg/scoop"
)

// Confirm prompts the user for yes/no confirmation.
func Confirm(prompt string, defaultYes bool) (bool, error) {
	label := prompt
	if defaultYes {
		label += " [Y/n]"
	} else {
		label += " [y/N]"
	}

	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if defaultYes {
		p.Default = "y"
	}

	result, err := p.Run()
	if err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return defaultYes, nil
	}

	result = strings.ToLower(strings.TrimSpace(result))
	if result == "" {
		return defaultYes, nil
	}
	return result == "y" || result == "yes", nil
}

// SelectVersion prompts the user to pick one version candidate.
func SelectVersion(candidates []scoop.VersionCandidate, prompt string) (*scoop.VersionCandidate, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no versions to select from")
	}
	if len(candidates) == 1 {
		return &candidates[0], nil
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ .Name | cyan }} {{ .Version | green }} [{{ .Bucket | magenta }}]",
		Inactive: "  {{ .Name }} {{ .Version | faint }} [{{ .Bucket | faint }}]",
		Selected: "{{ .Name | cyan }} {{ .Version | green }}",
	}

	sel := promptui.Select{
		Label:     prompt,
		Items:     candidates,
		Templates: templates,
		Size:      10,
	}

	idx, _, err := sel.Run()
	if err != nil {
		return nil, err
	}
	return &candidates[idx], nil
}
