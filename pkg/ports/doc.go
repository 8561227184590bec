/*
Package ports defines the driven ports (interfaces) around the fable engine.

The engine itself never touches storage: a session is saved by turning it into
a domain.SaveData envelope, and a SaveStore decides where that envelope lives.

# Key Interfaces

  - SaveStore: keeps named save envelopes (e.g., on disk or in memory).
*/
package ports
