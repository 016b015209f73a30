package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathFunctions(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"DataDir", DataDir("/home/alice/.local/share"), "/home/alice/.local/share/vtodo"},
		{"GlobalConfigDir", GlobalConfigDir("/home/alice/.config"), "/home/alice/.config/vtodo"},
		{"TaskLogPath", TaskLogPath("/data", 7), "/data/logs/task-7.log"},
		{"GlobalLogPath", GlobalLogPath("/data"), "/data/logs/vtodo.log"},
		{"StorePath json", StorePath("/data", StoreJSON), "/data/tasks.json"},
		{"StorePath sqlite", StorePath("/data", StoreSQLite), "/data/tasks.db"},
		{"StorePath unknown", StorePath("/data", ""), "/data/tasks.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), tt.got)
		})
	}
}
