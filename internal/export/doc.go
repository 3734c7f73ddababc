// Package export locates conversation shards inside a chat export tree.
//
// An export tree looks like:
//
//	<dir>/<something-inbox-001>/inbox/<name_id>/message_1.json
//
// Every listing uses os.ReadDir order, which is sorted by file name.
package export
