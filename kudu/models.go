package kudu

import "time"

// FileInfo describes one entry of a vfs directory listing. Resource and Path
// are filled in by the client: Path is the directory joined with the entry
// name, not the remote machine's local path.
type FileInfo struct {
	Name  string    `json:"name"`
	Size  int64     `json:"size"`
	MTime time.Time `json:"mtime"`
	Mime  string    `json:"mime"`
	Href  string    `json:"href"`

	Resource string `json:"-"`
	Path     string `json:"-"`
}

// IsDirectory reports whether the entry is a subdirectory. The vfs endpoint
// marks directories with an inode mime type.
func (f FileInfo) IsDirectory() bool {
	return f.Mime == "inode/directory" || f.Mime == "inode/shortcut"
}

type ProcessInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Href string `json:"href"`
}

// CommandOutput is the api/command response envelope. The endpoint reports
// remote command failure through ExitCode and Error, not through HTTP status.
type CommandOutput struct {
	Output   string `json:"Output"`
	Error    string `json:"Error"`
	ExitCode int    `json:"ExitCode"`
}

type TunnelStatus struct {
	State        string `json:"state"`
	Port         int    `json:"port"`
	CanReachPort bool   `json:"canReachPort"`
	Message      string `json:"msg"`
}
