// Package document reads and writes stories as YAML documents.
//
// A document has an optional id and title, a map of variable defaults and a
// map of nodes keyed by node ID:
//
//	id: cellar
//	title: The Cellar
//	variables:
//	  has_key: false
//	nodes:
//	  start:
//	    type: passage
//	    start: true
//	    content: A trapdoor leads down.
//	    choices:
//	      - text: Go down
//	        target: check_key
//	  check_key:
//	    type: condition
//	    expression: has_key === true
//	    ifTrue: cellar
//	    ifFalse: locked
//
// Nodes without a type are passages.
package document
