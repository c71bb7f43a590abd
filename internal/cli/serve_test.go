package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/tilemon/internal/config"
	"github.com/rileyhilliard/tilemon/internal/server"
)

func TestEndpointURLs(t *testing.T) {
	assert.Equal(t,
		[]string{"http://localhost:8085/api/data"},
		endpointURLs(nil, 8085))
	assert.Equal(t,
		[]string{"http://192.168.1.5:9000/api/data", "http://10.0.0.3:9000/api/data"},
		endpointURLs([]string{"192.168.1.5", "10.0.0.3"}, 9000))
}

func TestNewProvider(t *testing.T) {
	_, isHost := newProvider(config.ServeConfig{Source: config.SourceHost}).(*server.HostProvider)
	assert.True(t, isHost)

	_, isFile := newProvider(config.ServeConfig{Source: config.SourceFile, File: "/tmp/s.txt"}).(*server.FileProvider)
	assert.True(t, isFile)
}

func TestApplyServeFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "serve"}
	cmd.Flags().IntVarP(&servePortFlag, "port", "p", config.DefaultPort, "")
	cmd.Flags().StringVar(&serveSourceFlag, "source", config.SourceHost, "")
	cmd.Flags().StringVar(&serveFileFlag, "file", "", "")
	t.Cleanup(func() {
		servePortFlag, serveSourceFlag, serveFileFlag = config.DefaultPort, config.SourceHost, ""
	})

	s := config.ServeConfig{Port: 9100, Source: config.SourceFile, File: "/data/a.txt"}
	applyServeFlags(cmd, &s)
	assert.Equal(t, config.ServeConfig{Port: 9100, Source: config.SourceFile, File: "/data/a.txt"}, s, "unset flags keep config")

	assert.NoError(t, cmd.Flags().Set("port", "9200"))
	assert.NoError(t, cmd.Flags().Set("file", "/data/b.txt"))
	applyServeFlags(cmd, &s)
	assert.Equal(t, 9200, s.Port)
	assert.Equal(t, config.SourceFile, s.Source)
	assert.Equal(t, "/data/b.txt", s.File)
}
