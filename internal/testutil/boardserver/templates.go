package boardserver

import "html/template"

var templates = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Name}}</title></head>
<body>
<form id="rename-form-{{.ID}}" class="rename-form hidden">
  <input id="rename-input-{{.ID}}" name="name" value="{{.Name}}">
  <button type="submit">Save</button>
</form>
<main id="board-content">{{template "content" .}}</main>
<div id="modal-backdrop" class="hidden"><div id="modal-content"></div></div>
</body>
</html>
{{define "content"}}
<h1 class="board-name">{{.Name}}</h1>
<div id="columns-container" data-board-id="{{.ID}}" data-board-name="{{.Name}}">
{{- range .Columns}}
  <div class="column" data-column-id="{{.ID}}" data-done-column="{{.Done}}">
    <div class="column-header">
      <span class="column-title">{{.Name}}</span>
      <button class="column-menu">...</button>
    </div>
    <div class="cards-container" data-column-id="{{.ID}}">
    {{- range .Cards}}
      <div class="card-item{{if .Completed}} completed{{end}}" data-card-id="{{.ID}}" data-completed="{{.Completed}}">
        <input type="checkbox"{{if .Completed}} checked{{end}}>
        <span class="card-title">{{.Title}}</span>
      </div>
    {{- end}}
    </div>
  </div>
{{- end}}
</div>
{{end}}
{{define "modal"}}
<div class="card-modal" data-card-id="{{.ID}}">
  <h2 class="card-title">{{.Title}}</h2>
  <div class="card-description">{{.Description}}</div>
  <div class="checklist-container" data-card-id="{{.ID}}">
  {{- range .Checklist}}
    <div class="checklist-item" data-item-id="{{.ID}}">
      <input type="checkbox"{{if .Done}} checked{{end}}>
      <span class="checklist-text">{{.Text}}</span>
    </div>
  {{- end}}
  </div>
  <button class="close-modal">Close</button>
</div>
{{end}}`))
