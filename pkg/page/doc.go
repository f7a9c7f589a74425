// Package page assembles the simulator host page: it builds the document from
// the endpoint contract, wires a sample loader and a submitter to every form,
// and renders the page markup together with the browser script that drives
// the same contract client side.
package page
