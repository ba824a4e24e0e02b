package site

// pageTemplate is the Go html/template for each topic page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} — {{.SiteTitle}}</title>
<link rel="stylesheet" href="style.css">
</head>
<body data-slug="{{.Slug}}">
<header class="topbar">
  <span class="site-title"><a href="index.html">{{.SiteTitle}}</a></span>
  <input id="search-input" type="search" placeholder="Search topics..." autocomplete="off">
  <button id="theme-toggle" title="Toggle theme">&#9681;</button>
</header>
<div class="layout">
  <aside class="sidebar">
    <div id="search-results" hidden></div>
    {{.Sidebar}}
  </aside>
  <main class="article">
    {{.Content}}
  </main>
  <aside class="toc-panel">
    {{if .TOC}}<div class="toc-title">On this page</div>{{.TOC}}{{end}}
  </aside>
</div>
<script src="script.js"></script>
</body>
</html>
`

// cssContent is the stylesheet written alongside the generated pages.
const cssContent = `:root {
  --bg: #ffffff;
  --fg: #1f2328;
  --muted: #656d76;
  --border: #d1d9e0;
  --accent: #0969da;
  --sidebar-bg: #f6f8fa;
  --code-bg: #f6f8fa;
  --mark-bg: #fff8c5;
}

html[data-theme="dark"] {
  --bg: #0d1117;
  --fg: #e6edf3;
  --muted: #8d96a0;
  --border: #30363d;
  --accent: #4493f8;
  --sidebar-bg: #161b22;
  --code-bg: #161b22;
  --mark-bg: #5a4d00;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
  font-size: 16px;
  line-height: 1.6;
  color: var(--fg);
  background: var(--bg);
}

.topbar {
  display: flex;
  align-items: center;
  gap: 16px;
  padding: 10px 20px;
  border-bottom: 1px solid var(--border);
  position: sticky;
  top: 0;
  background: var(--bg);
  z-index: 10;
}

.site-title a {
  color: var(--fg);
  font-weight: 600;
  text-decoration: none;
}

#search-input {
  flex: 1;
  max-width: 420px;
  padding: 6px 12px;
  border: 1px solid var(--border);
  border-radius: 6px;
  background: var(--sidebar-bg);
  color: var(--fg);
}

#theme-toggle {
  margin-left: auto;
  border: 1px solid var(--border);
  border-radius: 6px;
  background: none;
  color: var(--fg);
  padding: 4px 10px;
  cursor: pointer;
}

.layout {
  display: grid;
  grid-template-columns: 280px minmax(0, 1fr) 240px;
  gap: 0;
}

.sidebar {
  border-right: 1px solid var(--border);
  background: var(--sidebar-bg);
  padding: 16px 8px;
  height: calc(100vh - 53px);
  overflow-y: auto;
  position: sticky;
  top: 53px;
}

.sidebar ul { list-style: none; margin: 0; padding-left: 14px; }
.sidebar > nav > ul { padding-left: 0; }

.category > .category-toggle {
  display: block;
  cursor: pointer;
  font-weight: 600;
  padding: 4px 8px;
  border-radius: 6px;
  user-select: none;
}

.category > .category-toggle::before {
  content: "\25B8";
  display: inline-block;
  width: 14px;
  color: var(--muted);
  transition: transform 0.12s ease;
}

.category.expanded > .category-toggle::before { transform: rotate(90deg); }
.category.collapsed > ul { display: none; }

.topic a {
  display: inline-block;
  padding: 3px 8px;
  border-radius: 6px;
  color: var(--fg);
  text-decoration: none;
}

.topic a:hover { background: var(--border); }
.topic a.active { color: var(--accent); font-weight: 600; }

.tier {
  font-size: 11px;
  color: var(--muted);
  border: 1px solid var(--border);
  border-radius: 10px;
  padding: 0 6px;
  vertical-align: middle;
}

#search-results {
  margin-bottom: 12px;
  border-bottom: 1px solid var(--border);
  padding-bottom: 12px;
}

#search-results .result a {
  display: block;
  padding: 4px 8px;
  border-radius: 6px;
  color: var(--fg);
  text-decoration: none;
}

#search-results .result a:hover { background: var(--border); }
#search-results .excerpt {
  font-size: 12px;
  color: var(--muted);
  padding: 0 8px 6px;
}
#search-results .no-results { color: var(--muted); padding: 4px 8px; }
#search-results mark { background: var(--mark-bg); border-radius: 2px; }

.article {
  padding: 24px 40px 80px;
  max-width: 880px;
}

.article h1, .article h2, .article h3 { scroll-margin-top: 70px; }
.article h1 { border-bottom: 1px solid var(--border); padding-bottom: 8px; }
.article a { color: var(--accent); }

.article pre {
  background: var(--code-bg);
  border: 1px solid var(--border);
  border-radius: 6px;
  padding: 12px;
  overflow-x: auto;
}

.article code {
  font-family: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace;
  font-size: 85%;
}

.article :not(pre) > code {
  background: var(--code-bg);
  border-radius: 4px;
  padding: 1px 5px;
}

.article table { border-collapse: collapse; }
.article th, .article td { border: 1px solid var(--border); padding: 6px 12px; }

.article blockquote {
  margin: 0;
  padding-left: 14px;
  border-left: 3px solid var(--border);
  color: var(--muted);
}

.toc-panel {
  padding: 24px 16px;
  font-size: 13px;
  height: calc(100vh - 53px);
  overflow-y: auto;
  position: sticky;
  top: 53px;
}

.toc-title {
  font-weight: 600;
  text-transform: uppercase;
  font-size: 11px;
  color: var(--muted);
  margin-bottom: 8px;
}

.toc-panel ul { list-style: none; margin: 0; padding-left: 12px; }
.toc-panel > ul { padding-left: 0; }
.toc-panel a { color: var(--muted); text-decoration: none; }
.toc-panel a:hover { color: var(--accent); }

@media (max-width: 1100px) {
  .layout { grid-template-columns: 260px minmax(0, 1fr); }
  .toc-panel { display: none; }
}

@media (max-width: 720px) {
  .layout { grid-template-columns: minmax(0, 1fr); }
  .sidebar { display: none; }
}
`

// jsContent drives the sidebar, client-side search, theme toggle and
// live reload on the generated pages.
const jsContent = `(function () {
  "use strict";

  var STORAGE_EXPANDED = "knav.expanded";
  var STORAGE_THEME = "knav.theme";

  // ---- sidebar expand/collapse, persisted in localStorage ----

  function loadExpanded() {
    try {
      return JSON.parse(localStorage.getItem(STORAGE_EXPANDED)) || [];
    } catch (e) {
      return [];
    }
  }

  function saveExpanded(ids) {
    try {
      localStorage.setItem(STORAGE_EXPANDED, JSON.stringify(ids));
    } catch (e) { /* private mode */ }
  }

  var expanded = loadExpanded();
  document.querySelectorAll(".category").forEach(function (li) {
    if (expanded.indexOf(li.dataset.id) !== -1) {
      li.classList.add("expanded");
      li.classList.remove("collapsed");
    }
    var toggle = li.querySelector(":scope > .category-toggle");
    if (!toggle) return;
    toggle.addEventListener("click", function () {
      var open = li.classList.toggle("expanded");
      li.classList.toggle("collapsed", !open);
      var ids = loadExpanded();
      var idx = ids.indexOf(li.dataset.id);
      if (open && idx === -1) ids.push(li.dataset.id);
      if (!open && idx !== -1) ids.splice(idx, 1);
      saveExpanded(ids);
    });
  });

  // ---- theme ----

  var saved = localStorage.getItem(STORAGE_THEME);
  if (saved) document.documentElement.dataset.theme = saved;

  var themeBtn = document.getElementById("theme-toggle");
  if (themeBtn) {
    themeBtn.addEventListener("click", function () {
      var cur = document.documentElement.dataset.theme;
      var next = cur === "dark" ? "light" : "dark";
      document.documentElement.dataset.theme = next;
      try { localStorage.setItem(STORAGE_THEME, next); } catch (e) {}
    });
  }

  // ---- search (same weighting as the server) ----

  var WEIGHT_EXACT_TITLE = 100;
  var WEIGHT_TITLE = 60;
  var WEIGHT_TAG = 30;
  var WEIGHT_CONTENT = 10;

  var index = null;

  function fetchIndex(cb) {
    if (index) return cb(index);
    fetch("search-index.json")
      .then(function (r) { return r.json(); })
      .then(function (data) { index = data; cb(index); })
      .catch(function () { cb([]); });
  }

  function score(topic, query, terms) {
    var s = 0;
    var title = (topic.title || "").toLowerCase();
    if (title === query) s += WEIGHT_EXACT_TITLE;
    else if (title.indexOf(query) !== -1) s += WEIGHT_TITLE;
    terms.forEach(function (term) {
      (topic.tags || []).forEach(function (tag) {
        if (tag.toLowerCase().indexOf(term) !== -1) s += WEIGHT_TAG;
      });
      if ((topic.content || "").toLowerCase().indexOf(term) !== -1) s += WEIGHT_CONTENT;
    });
    return s;
  }

  function escapeHTML(str) {
    var div = document.createElement("div");
    div.textContent = str;
    return div.innerHTML;
  }

  function excerpt(topic, query) {
    var content = topic.content || "";
    var lower = content.toLowerCase();
    var at = lower.indexOf(query);
    if (at === -1) return escapeHTML(topic.summary || "");
    var start = Math.max(0, at - 60);
    var end = Math.min(content.length, at + query.length + 60);
    var out = escapeHTML(content.slice(start, at)) +
      "<mark>" + escapeHTML(content.slice(at, at + query.length)) + "</mark>" +
      escapeHTML(content.slice(at + query.length, end));
    if (start > 0) out = "…" + out;
    if (end < content.length) out += "…";
    return out;
  }

  var input = document.getElementById("search-input");
  var results = document.getElementById("search-results");

  function renderResults(query) {
    query = query.trim().toLowerCase();
    if (!query) {
      results.hidden = true;
      results.innerHTML = "";
      return;
    }
    fetchIndex(function (topics) {
      var terms = query.split(/\s+/);
      var scored = topics
        .map(function (t) { return { topic: t, score: score(t, query, terms) }; })
        .filter(function (r) { return r.score > 0; })
        .sort(function (a, b) { return b.score - a.score; })
        .slice(0, 10);

      if (scored.length === 0) {
        results.innerHTML = '<div class="no-results">No topics match.</div>';
      } else {
        results.innerHTML = scored.map(function (r) {
          return '<div class="result"><a href="' + r.topic.slug + '.html">' +
            escapeHTML(r.topic.title) + "</a>" +
            '<div class="excerpt">' + excerpt(r.topic, query) + "</div></div>";
        }).join("");
      }
      results.hidden = false;
    });
  }

  if (input && results) {
    var pending = null;
    input.addEventListener("input", function () {
      clearTimeout(pending);
      var value = input.value;
      pending = setTimeout(function () { renderResults(value); }, 120);
    });
  }

  // ---- live reload (no-op on static hosting) ----

  function connectReload() {
    if (location.protocol === "file:") return;
    var proto = location.protocol === "https:" ? "wss:" : "ws:";
    var ws;
    try {
      ws = new WebSocket(proto + "//" + location.host + "/ws");
    } catch (e) {
      return;
    }
    ws.onmessage = function (ev) {
      if (ev.data === "reload") location.reload();
    };
    ws.onerror = function () { ws.close(); };
  }

  connectReload();
})();
`
