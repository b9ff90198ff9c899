package prompt

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// NewBranchAnswers captures the choices made by the "ebb new" wizard.
type NewBranchAnswers struct {
	SourcePath string
	ParentPath string
	Name       string
	Identity   bool // true: Branch (identity preserved); false: CopySubtree (fresh EIDs)
}

// existingNamesAt should list the names already taken under the chosen
// parent, so the wizard can reject a colliding mount name up front;
// Branch and CopySubtree themselves do not check sibling names.
type existingNamesAt func(parentPath string) []string

// RunNewBranch asks the four questions needed to mount a new branch: the
// source element to branch or copy, where to mount it, what to name the
// mount, and whether element identity should be preserved across the
// move. Returns an error (wrapping "canceled" on Ctrl-C) if the user
// aborts.
func RunNewBranch(namesAt existingNamesAt) (*NewBranchAnswers, error) {
	answers := &NewBranchAnswers{}

	if err := survey.AskOne(&survey.Input{
		Message: "Path of the element to branch (relative to the repository root)",
	}, &answers.SourcePath, survey.WithValidator(survey.Required)); err != nil {
		return nil, fmt.Errorf("canceled: %w", err)
	}

	if err := survey.AskOne(&survey.Input{
		Message: "Path of the new mount point's parent",
		Default: "",
	}, &answers.ParentPath); err != nil {
		return nil, fmt.Errorf("canceled: %w", err)
	}

	if err := survey.AskOne(&survey.Input{
		Message: "Name for the new mount point",
	}, &answers.Name, survey.WithValidator(survey.Required)); err != nil {
		return nil, fmt.Errorf("canceled: %w", err)
	}

	if namesAt != nil {
		for _, existing := range namesAt(answers.ParentPath) {
			if existing == answers.Name {
				return nil, fmt.Errorf("%q already exists under %q", answers.Name, answers.ParentPath)
			}
		}
	}

	if err := survey.AskOne(&survey.Confirm{
		Message: "Preserve element identity (branch) instead of assigning fresh EIDs (copy)?",
		Default: true,
	}, &answers.Identity); err != nil {
		return nil, fmt.Errorf("canceled: %w", err)
	}

	return answers, nil
}
