package preview

import (
	"html/template"
	"io"
)

// NodeAttr is the attribute carrying host node ids in served markup.
const NodeAttr = "data-ember-id"

var pageTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<main id="ember-root">{{.Body}}</main>
<script>
(function () {
  var root = document.getElementById("ember-root");
  var attr = {{.NodeAttr}};

  function send(target, type, body) {
    var el = target.closest("[" + attr + "]");
    if (!el) return;
    fetch("/events/" + el.getAttribute(attr) + "/" + type, {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify(body || {})
    });
  }

  root.addEventListener("click", function (e) { send(e.target, "click"); });
  root.addEventListener("input", function (e) {
    send(e.target, "input", {value: e.target.value});
  });
  root.addEventListener("change", function (e) {
    var t = e.target;
    if (t.type === "checkbox" || t.type === "radio") {
      send(t, "change", {property: "checked", value: t.checked});
    } else {
      send(t, "change", {value: t.value});
    }
  });

  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (e) {
    var msg = JSON.parse(e.data);
    root.innerHTML = msg.html;
  };
})();
</script>
</body>
</html>
`))

type pageData struct {
	Title    string
	Body     template.HTML
	NodeAttr string
}

func writePage(w io.Writer, title, body string) error {
	return pageTemplate.Execute(w, pageData{
		Title:    title,
		Body:     template.HTML(body),
		NodeAttr: NodeAttr,
	})
}
