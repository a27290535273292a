package application

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/omnisearch/internal/domain/model"
	"github.com/ericfisherdev/omnisearch/internal/domain/port/driven"
)

// FileDashboard is the file listing grouped into dashboard tabs. When the
// listing could not be fetched, Error holds the message to show and Groups
// is empty.
type FileDashboard struct {
	Groups []model.FileGroup
	Total  int
	Error  string
	Status int
}

// Empty reports whether the listing succeeded with no files.
func (d *FileDashboard) Empty() bool {
	return d.Error == "" && d.Total == 0
}

// FileService builds the file dashboard from the backend listing.
type FileService struct {
	api driven.BackendAPI
}

// NewFileService creates a new FileService.
func NewFileService(api driven.BackendAPI) *FileService {
	return &FileService{api: api}
}

// Dashboard fetches the listing and groups it. Backend failures are reported
// through FileDashboard.Error; the error return is for misconfiguration only.
func (s *FileService) Dashboard(ctx context.Context) (*FileDashboard, error) {
	result, err := s.api.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	if !result.OK() {
		return &FileDashboard{Error: result.Errors, Status: result.Status}, nil
	}

	files := result.Data.Files
	return &FileDashboard{
		Groups: GroupFiles(files),
		Total:  len(files),
		Status: result.Status,
	}, nil
}

// GroupFiles returns the "All Files" tab followed by one tab per display type,
// in the order each type first appears in files.
func GroupFiles(files []model.DriveFile) []model.FileGroup {
	all := model.FileGroup{Type: model.FileTypeAll, Files: files}
	if all.Files == nil {
		all.Files = []model.DriveFile{}
	}
	groups := []model.FileGroup{all}

	index := make(map[string]int)
	for _, f := range files {
		t := f.DisplayType()
		i, ok := index[t]
		if !ok {
			i = len(groups)
			index[t] = i
			groups = append(groups, model.FileGroup{Type: t})
		}
		groups[i].Files = append(groups[i].Files, f)
	}
	return groups
}
