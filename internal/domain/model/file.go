package model

import "time"

// DriveFile is a file entry as returned by the backend file listing.
type DriveFile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MimeType     string    `json:"mimeType"`
	ModifiedTime time.Time `json:"modifiedTime"`
	ViewLink     string    `json:"webViewLink,omitempty"`
}

// FileListing is the backend payload for the file dashboard.
type FileListing struct {
	Files []DriveFile `json:"files"`
}

// Display type labels used to group files on the dashboard.
const (
	FileTypeAll    = "All Files"
	FileTypeSheet  = "Google Sheet"
	FileTypeDoc    = "Google Doc"
	FileTypeFolder = "Folder"
	FileTypePDF    = "PDF"
	FileTypeOther  = "File"
)

// DisplayType maps the file's MIME type to a dashboard label.
func (f DriveFile) DisplayType() string {
	switch f.MimeType {
	case "application/vnd.google-apps.spreadsheet":
		return FileTypeSheet
	case "application/vnd.google-apps.document":
		return FileTypeDoc
	case "application/vnd.google-apps.folder":
		return FileTypeFolder
	case "application/pdf":
		return FileTypePDF
	default:
		return FileTypeOther
	}
}

// FileGroup is a named tab of files on the dashboard.
type FileGroup struct {
	Type  string
	Files []DriveFile
}
