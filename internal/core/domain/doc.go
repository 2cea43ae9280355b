// Package domain contains the core types of the tafsir pipeline:
// verse keys and their integer order encoding, commentary sections,
// publishable document units, section artifacts and reconcile reports.
// Types here carry no I/O; adapters translate them to wire formats.
package domain
