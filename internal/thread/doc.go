// Package thread merges the message part files of one conversation shard
// into a single conversation. Metadata comes from the first part; messages
// are concatenated in part order without re-sorting.
package thread
