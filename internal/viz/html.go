// Package viz renders graphs as self-contained Cytoscape.js HTML pages.
package viz

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/matsen/notiongraph/internal/graph"
	"github.com/matsen/notiongraph/internal/palette"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// CDNScript loads Cytoscape.js when the page is not rendered offline.
const CDNScript = `<script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>`

// DefaultTitle is the page title used when HTMLOptions.Title is empty.
const DefaultTitle = "Notion Graph"

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Layout string // one of ValidLayouts; empty means "force"
	Title  string

	// Offline inlines CytoscapeJS instead of loading it from the CDN.
	Offline     bool
	CytoscapeJS string

	// Legend lists the page colors by value. LegendTitle names the color property.
	Legend      []palette.Entry
	LegendTitle string

	ShowNodeLabels bool
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Layout:         "force",
		Title:          DefaultTitle,
		ShowNodeLabels: true,
	}
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"force", "circle", "grid", "concentric", "breadthfirst"}

// ErrNoCytoscapeSource is returned for offline rendering without a script.
var ErrNoCytoscapeSource = errors.New("offline rendering needs the Cytoscape.js source")

// GenerateHTML generates a self-contained HTML page for g. Page nodes are
// filled with their own color; the stats panel reflects g as given.
func GenerateHTML(g *graph.Graph, opts HTMLOptions) (string, error) {
	if g == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	if err := validateLayout(opts.Layout); err != nil {
		return "", err
	}

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	if g.IsEmpty() {
		return generateEmptyHTML(title)
	}

	scriptTag, err := buildScriptTag(opts)
	if err != nil {
		return "", err
	}

	graphJSON, err := g.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	data := templateData{
		Title:       title,
		ScriptTag:   scriptTag,
		GraphJSON:   template.JS(graphJSON),
		Layout:      layoutToCytoscape(opts.Layout),
		ShowLabels:  opts.ShowNodeLabels,
		Legend:      opts.Legend,
		LegendTitle: opts.LegendTitle,
		Stats:       graph.ComputeStats(g),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}

	return buf.String(), nil
}

func validateLayout(layout string) error {
	if layout == "" {
		return nil
	}
	for _, l := range ValidLayouts {
		if layout == l {
			return nil
		}
	}
	return fmt.Errorf("invalid layout %q: must be one of %s", layout, strings.Join(ValidLayouts, ", "))
}

type templateData struct {
	Title       string
	ScriptTag   template.HTML
	GraphJSON   template.JS
	Layout      string
	ShowLabels  bool
	Legend      []palette.Entry
	LegendTitle string
	Stats       graph.Stats
}

// layoutToCytoscape converts user-facing layout names to Cytoscape.js layout names.
func layoutToCytoscape(layout string) string {
	switch layout {
	case "", "force":
		return "cose"
	default:
		return layout
	}
}

func buildScriptTag(opts HTMLOptions) (template.HTML, error) {
	if !opts.Offline {
		return template.HTML(CDNScript), nil
	}
	if strings.TrimSpace(opts.CytoscapeJS) == "" {
		return "", ErrNoCytoscapeSource
	}
	// A literal closing tag would end the inline script early.
	src := strings.ReplaceAll(opts.CytoscapeJS, "</script", `<\/script`)
	return template.HTML("<script>" + src + "</script>"), nil
}

func generateEmptyHTML(title string) (string, error) {
	var buf bytes.Buffer
	if err := compiledTemplate.ExecuteTemplate(&buf, "empty", struct{ Title string }{title}); err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}
	return buf.String(), nil
}

const htmlTemplate = `{{define "empty"}}<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}} - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f7f6f3;
    }
    .empty-state { text-align: center; color: #787774; }
    .empty-state h2 { margin-bottom: 0.5em; color: #37352f; }
    .empty-state p { margin: 0.5em 0; }
    .empty-state code { background: #e3e2e0; padding: 2px 6px; border-radius: 3px; }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No graph data</h2>
    <p>No records matched, or no properties were selected.</p>
    <p>Fetch a database using <code>ngraph fetch</code></p>
    <p>Select properties using <code>--props</code> or <code>ngraph config properties</code></p>
  </div>
</body>
</html>{{end}}<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  {{.ScriptTag}}
  <style>
    * { box-sizing: border-box; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f7f6f3;
      color: #37352f;
    }
    #cy { width: 100%; height: 100vh; background: white; }
    .panel {
      position: absolute;
      background: white;
      border: 1px solid #e3e2e0;
      border-radius: 6px;
      padding: 10px 14px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.08);
      font-size: 12px;
      z-index: 500;
      max-width: 260px;
    }
    #stats { top: 12px; left: 12px; }
    #legend { top: 12px; right: 12px; max-height: 60vh; overflow-y: auto; }
    .panel h3 { margin: 0 0 6px; font-size: 12px; text-transform: uppercase; color: #787774; }
    .panel ol { margin: 4px 0 0; padding-left: 18px; }
    .swatch {
      display: inline-block;
      width: 12px;
      height: 12px;
      border-radius: 3px;
      margin-right: 6px;
      vertical-align: middle;
      border: 1px solid rgba(0,0,0,0.1);
    }
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 8px 12px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      max-width: 300px;
      font-size: 13px;
      z-index: 1000;
      pointer-events: none;
    }
    #tooltip .type { font-size: 10px; text-transform: uppercase; color: #888; margin-bottom: 4px; }
    #tooltip .label { font-weight: bold; margin-bottom: 4px; }
    #tooltip .detail { color: #555; margin: 2px 0; }
  </style>
</head>
<body>
  <div id="cy"></div>
  <div id="stats" class="panel">
    <h3>Graph</h3>
    <div>Nodes: {{.Stats.NodeCount}}</div>
    <div>Edges: {{.Stats.EdgeCount}}</div>
    <div>Average degree: {{printf "%.2f" .Stats.AvgDegree}}</div>
    {{- if .Stats.TopCentralNodes}}
    <ol>
      {{- range .Stats.TopCentralNodes}}
      <li>{{.Label}} ({{.Degree}})</li>
      {{- end}}
    </ol>
    {{- end}}
  </div>
  {{- if .Legend}}
  <div id="legend" class="panel">
    <h3>{{if .LegendTitle}}{{.LegendTitle}}{{else}}Legend{{end}}</h3>
    {{- range .Legend}}
    <div><span class="swatch" style="background: {{.Color}}"></span>{{.Value}}</div>
    {{- end}}
  </div>
  {{- end}}
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const layout = "{{.Layout}}";
      const showLabels = {{.ShowLabels}};

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        style: [
          {
            selector: 'node',
            style: {
              'label': showLabels ? 'data(label)' : '',
              'color': '#37352f',
              'font-size': '10px',
              'text-valign': 'bottom',
              'text-margin-y': '5px',
              'text-wrap': 'ellipsis',
              'text-max-width': '120px'
            }
          },
          // Page nodes take the color assigned from the color property
          {
            selector: 'node[type="page"]',
            style: {
              'background-color': 'data(color)',
              'width': '28px',
              'height': '28px'
            }
          },
          {
            selector: 'node[type="keyword"]',
            style: {
              'background-color': '#548164',
              'shape': 'round-rectangle',
              'width': '18px',
              'height': '18px'
            }
          },
          {
            selector: 'node[type="prop"]',
            style: {
              'background-color': '#9065B0',
              'shape': 'diamond',
              'width': '22px',
              'height': '22px'
            }
          },
          {
            selector: 'edge',
            style: {
              'line-color': '#787774',
              'curve-style': 'bezier',
              'opacity': 0.6,
              'width': 1.5
            }
          },
          {
            selector: 'node.highlighted',
            style: {
              'border-width': 3,
              'border-color': '#64473A'
            }
          },
          {
            selector: 'node.dimmed',
            style: { 'opacity': 0.3 }
          },
          {
            selector: 'edge.dimmed',
            style: { 'opacity': 0.1 }
          }
        ],
        layout: {
          name: layout,
          animate: false,
          // cose-specific options
          nodeRepulsion: 8000,
          idealEdgeLength: 100,
          edgeElasticity: 100,
          // concentric places high-degree nodes in the middle
          concentric: function(node) { return node.degree(); },
          levelWidth: function() { return 2; }
        }
      });

      const tooltip = document.getElementById('tooltip');

      function showTooltip(evt, content) {
        tooltip.innerHTML = content;
        tooltip.style.display = 'block';
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 15) + 'px';
      }

      function hideTooltip() {
        tooltip.style.display = 'none';
      }

      function getNodeTooltip(node) {
        const data = node.data();
        let html = '<div class="type">' + escapeHtml(data.type) + '</div>';
        html += '<div class="label">' + escapeHtml(data.label) + '</div>';

        if (data.type === 'prop' && data.propName) {
          html += '<div class="detail">Property: ' + escapeHtml(data.propName) + '</div>';
        }
        html += '<div class="detail">Connections: ' + node.degree() + '</div>';
        return html;
      }

      function escapeHtml(str) {
        if (!str) return '';
        return String(str).replace(/&/g, '&amp;')
                          .replace(/</g, '&lt;')
                          .replace(/>/g, '&gt;')
                          .replace(/"/g, '&quot;');
      }

      cy.on('mouseover', 'node', function(evt) {
        showTooltip(evt, getNodeTooltip(evt.target));
      });

      cy.on('mouseout', 'node', function() {
        hideTooltip();
      });

      cy.on('tap', 'node', function(evt) {
        const node = evt.target;
        cy.elements().removeClass('highlighted dimmed');

        const neighborhood = node.neighborhood().add(node);
        neighborhood.addClass('highlighted');
        cy.elements().not(neighborhood).addClass('dimmed');
      });

      cy.on('tap', function(evt) {
        if (evt.target === cy) {
          cy.elements().removeClass('highlighted dimmed');
        }
      });
    })();
  </script>
</body>
</html>`
