package pipeline

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"resumescreen/internal/common"
	"resumescreen/internal/errors"
	"resumescreen/internal/types"
	"resumescreen/internal/utils"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// LoadJobDescription reads a job description from path. JSON files are
// decoded into the structured form and validated; plain text files
// become a raw-text job with the first line as title.
func LoadJobDescription(path string, fp *common.FileProcessor) (types.JobDescription, error) {
	var job types.JobDescription

	if utils.GetFileExtension(path) != ".json" && !utils.IsTextFile(path) {
		return job, errors.NewValidationError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("Job description must be a JSON or text file: %s", path), nil)
	}

	content, err := fp.ReadFile(path)
	if err != nil {
		return job, err
	}

	if utils.GetFileExtension(path) == ".json" {
		if err := json.Unmarshal([]byte(content), &job); err != nil {
			return job, errors.NewParseError(errors.ErrCodeInvalidFormat,
				fmt.Sprintf("Job description is not valid JSON: %s", path), err)
		}
	} else {
		job = jobFromText(path, content)
	}

	if err := validate.Struct(&job); err != nil {
		return job, errors.NewValidationError(errors.ErrCodeMissingField,
			fmt.Sprintf("Job description is incomplete: %s", path), err)
	}

	return job, nil
}

// jobFromText builds a raw-text job description. The first non-empty
// line is taken as the title.
func jobFromText(path, content string) types.JobDescription {
	title := ""
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			title = trimmed
			break
		}
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return types.JobDescription{
		Title:   title,
		RawText: content,
	}
}
