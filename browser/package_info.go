// Package browser drives the web application in a real browser through the Chrome DevTools
// Protocol.
package browser
