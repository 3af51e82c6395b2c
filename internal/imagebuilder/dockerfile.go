package imagebuilder

import (
	"bytes"
	"embed"
	"text/template"
)

//go:embed templates/Dockerfile.tmpl
var templatesFS embed.FS

var dockerfileTemplate *template.Template

func init() {
	dockerfileTemplate = template.Must(
		template.New("").ParseFS(templatesFS, "templates/Dockerfile.tmpl"),
	)
}

// DockerfileData holds the values substituted into the generated Dockerfile.
type DockerfileData struct {
	BuilderImage string
	Version      string
	Arch         string
	Board        string
	Home         string
}

// RenderDockerfile renders the Dockerfile used to build the per-image
// builder container.
func RenderDockerfile(data DockerfileData) ([]byte, error) {
	var buf bytes.Buffer
	if err := dockerfileTemplate.ExecuteTemplate(&buf, "Dockerfile.tmpl", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
