package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/itchyny/gojq"
	"go.yaml.in/yaml/v3"

	"github.com/armkit/armkit/config"
	"github.com/armkit/armkit/faults"
	"github.com/armkit/armkit/resource"
)

func stderr() io.Writer {
	return os.Stderr
}

// entityView is the CLI's rendering of one cached entity.
type entityView struct {
	Name          string `json:"name" yaml:"name"`
	ResourceGroup string `json:"resourceGroup,omitempty" yaml:"resourceGroup,omitempty"`
	ID            string `json:"id" yaml:"id"`
	Status        string `json:"status" yaml:"status"`
	Remote        any    `json:"remote,omitempty" yaml:"remote,omitempty"`
}

func viewOf[R any](entity *resource.Entity[R]) entityView {
	view := entityView{
		Name:          entity.Name(),
		ResourceGroup: entity.ResourceGroup(),
		ID:            entity.ID().String(),
		Status:        entity.Status().String(),
	}
	if raw, ok := entity.Remote().Value(); ok {
		view.Remote = raw
	}
	return view
}

func viewsOf[R any](entities []*resource.Entity[R]) []entityView {
	views := make([]entityView, 0, len(entities))
	for _, entity := range entities {
		views = append(views, viewOf(entity))
	}
	return views
}

// render writes the value in the selected format, after the optional jq
// expression. Everything round-trips through JSON so SDK pointer fields
// flatten into plain values first.
func (d *Dependencies) render(w io.Writer, value any) error {
	generic, err := toGeneric(value)
	if err != nil {
		return err
	}

	if d.flags.Query != "" {
		query, err := gojq.Parse(d.flags.Query)
		if err != nil {
			return faults.Configurationf("invalid query %q: %v", d.flags.Query, err)
		}

		var results []any
		iter := query.Run(generic)
		for {
			v, ok := iter.Next()
			if !ok {
				break
			}
			if err, ok := v.(error); ok {
				return faults.Configurationf("query %q failed: %v", d.flags.Query, err)
			}
			results = append(results, v)
		}
		if len(results) == 1 {
			generic = results[0]
		} else {
			generic = results
		}
	}

	output := d.flags.Output
	if output == "" {
		output = config.OutputJSON
	}
	switch output {
	case config.OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(generic); err != nil {
			return err
		}
		return encoder.Close()
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(generic)
	}
}

func toGeneric(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, faults.Invariantf("value is not renderable: %v", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, faults.Invariantf("value is not renderable: %v", err)
	}
	return generic, nil
}
