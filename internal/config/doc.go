// Package config manages the declared configuration document: the list of
// virtual domain mappings and the tool settings, stored in YAML format.
//
// The document lives at ~/.vidos/config.yaml and is the single source of
// declared intent. Every command loads it at the start, mutates it in
// memory, and saves it back as a whole-document overwrite at the end of a
// successful mutating command. No partial-write recovery is attempted.
//
// Example config.yaml:
//
//	domains:
//	  - source: api.example.com
//	    destination: 127.0.0.1:5001
//	    status: active
//	settings:
//	  hosts_file: /etc/hosts
//	  nginx_install_path: /home/dev/.vidos/nginx
//	  alias_dir: vidos
//	  auto_refresh: true
//
// # Domains
//
// A Domain maps a hostname (source) to a local ip:port (destination). The
// source is unique within the document; lookups are exact and
// case-sensitive. The status field is the declared intent for the domain's
// enabled state and is the only field mutated after creation.
//
// # Thread Safety
//
// Config operations are NOT thread-safe. Each command invocation operates on
// its own loaded copy; two concurrent invocations of the tool race on the
// document and can lose updates. This is a documented limitation for a
// single-user local-development tool.
package config
