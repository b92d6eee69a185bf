package live

// clientScript connects the page to its session. It forwards events for
// every element carrying a data-qid and morphs updated elements in place,
// matching elements by data-qid so focus and input state survive.
const clientScript = `(function () {
  "use strict";
  var script = document.currentScript;
  var session = script.getAttribute("data-session");
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(proto + "//" + location.host + "/ws?session=" + encodeURIComponent(session));

  var events = ["click", "dblclick", "mousedown", "mouseup", "mouseover", "mouseout",
    "input", "change", "submit", "focus", "blur"];

  events.forEach(function (type) {
    document.addEventListener(type, function (e) {
      if (ws.readyState !== WebSocket.OPEN) return;
      var el = e.target;
      if (!el || !el.getAttribute || !el.getAttribute("data-qid")) return;
      if (type === "submit") e.preventDefault();
      var msg = { qid: el.getAttribute("data-qid"), event: type };
      if (typeof el.value === "string" && el.tagName !== "BUTTON") msg.value = el.value;
      if (el.type === "checkbox" || el.type === "radio") msg.checked = el.checked;
      ws.send(JSON.stringify(msg));
    }, true);
  });

  function same(a, b) {
    if (a.nodeType !== b.nodeType) return false;
    if (a.nodeType !== 1) return true;
    return a.getAttribute("data-qid") === b.getAttribute("data-qid");
  }

  function patchAttrs(el, next) {
    var i, attr;
    for (i = el.attributes.length - 1; i >= 0; i--) {
      attr = el.attributes[i];
      if (!next.hasAttribute(attr.name)) el.removeAttribute(attr.name);
    }
    for (i = 0; i < next.attributes.length; i++) {
      attr = next.attributes[i];
      if (el.getAttribute(attr.name) !== attr.value) el.setAttribute(attr.name, attr.value);
    }
  }

  function patchChildren(parent, next) {
    var cur = Array.prototype.slice.call(parent.childNodes);
    var want = Array.prototype.slice.call(next.childNodes);
    for (var i = 0; i < want.length; i++) {
      var c = cur[i], n = want[i];
      if (!c) {
        parent.appendChild(n);
      } else if (same(c, n)) {
        patchNode(c, n);
      } else {
        parent.replaceChild(n, c);
      }
    }
    for (var j = want.length; j < cur.length; j++) {
      if (cur[j].parentNode === parent) parent.removeChild(cur[j]);
    }
  }

  function patchNode(el, next) {
    if (el.nodeType !== 1) {
      if (el.nodeValue !== next.nodeValue) el.nodeValue = next.nodeValue;
      return;
    }
    patchAttrs(el, next);
    patchChildren(el, next);
  }

  ws.onmessage = function (m) {
    var msg = JSON.parse(m.data);
    if (msg.type === "error") {
      console.error("quasar:", msg.error);
      return;
    }
    (msg.updates || []).forEach(function (u) {
      var el = document.querySelector('[data-qid="' + u.qid + '"]');
      if (!el) return;
      var tpl = document.createElement("template");
      tpl.innerHTML = u.html;
      patchChildren(el, tpl.content);
    });
  };

  ws.onclose = function () {
    document.documentElement.setAttribute("data-quasar", "disconnected");
  };
})();
`
