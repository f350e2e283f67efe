package chrome

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Page-side functions. Each is called through jsCall with JSON-encoded
// arguments so that ids and slugs are never spliced into source text.

// observerJS reports childList mutations that are not confined to the badge.
// Returns false when an observer is already installed in this document.
const observerJS = `function(binding, badgeId) {
	if (window.__problemBadgeObserver) return false;
	var insideBadge = function(n) {
		for (; n; n = n.parentNode) { if (n.id === badgeId) return true; }
		return false;
	};
	var mo = new MutationObserver(function(records) {
		for (var i = 0; i < records.length; i++) {
			if (!insideBadge(records[i].target)) {
				try { window[binding](location.href); } catch (e) {}
				return;
			}
		}
	});
	mo.observe(document, {childList: true, subtree: true});
	window.__problemBadgeObserver = mo;
	return true;
}`

const locationJS = `function() {
	return {href: location.href, path: location.pathname};
}`

const payloadJS = `function(id) {
	var el = document.getElementById(id);
	return el && el.textContent ? el.textContent : "";
}`

// anchorsJS keeps the matched elements page-side; a candidate's ref is its
// index in that array until the next call.
const anchorsJS = `function(prefix) {
	var stash = [], out = [];
	document.querySelectorAll("a[href]").forEach(function(a) {
		var href = a.getAttribute("href") || "";
		if (href.indexOf(prefix) !== 0) return;
		var text = (a.textContent || "").trim();
		if (!text) return;
		var r = a.getBoundingClientRect();
		out.push({
			ref: stash.length, href: href, text: text,
			width: r.width, height: r.height, top: r.top,
			fontSize: parseFloat(getComputedStyle(a).fontSize) || 0
		});
		stash.push(a);
	});
	window.__problemBadgeAnchors = stash;
	return out;
}`

const headingJS = `function() {
	return !!document.querySelector("h1, h2");
}`

// ensureJS returns 1 for an existing badge, 2 for a created one and 0 when
// there is nothing to attach to.
const ensureJS = `function(id, ref, style) {
	if (document.getElementById(id)) return 1;
	var target = ref < 0 ? document.querySelector("h1, h2") : (window.__problemBadgeAnchors || [])[ref];
	if (!target || !target.isConnected || !target.parentElement) return 0;
	var badge = document.createElement("span");
	badge.id = id;
	badge.setAttribute("style", style);
	target.parentElement.insertBefore(badge, target.nextSibling);
	return 2;
}`

// setTextJS only writes when something changed, so re-rendering the same
// counts does not produce a mutation.
const setTextJS = `function(id, text, title) {
	var el = document.getElementById(id);
	if (!el) return false;
	if (el.textContent !== text) el.textContent = text;
	if (el.title !== title) el.title = title;
	return true;
}`

// jsCall builds an immediately-invoked expression of fn with args
func jsCall(fn string, args ...any) (string, error) {
	encoded := make([]string, len(args))
	for i, a := range args {
		b, err := json.Marshal(a)
		if err != nil {
			return "", fmt.Errorf("encode script argument %d: %w", i, err)
		}
		encoded[i] = string(b)
	}
	return "(" + fn + ")(" + strings.Join(encoded, ", ") + ")", nil
}
