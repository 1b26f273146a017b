// Package quest defines the quest record and its two on-disk shapes.
//
// # Overview
//
// A quest record is a JSON object with one mandatory field, game_id. Every
// other field is opaque payload: the record carries its raw JSON bytes and
// fields are read on demand, so field order and content survive any number of
// split/merge round-trips untouched.
//
// Records live in two places:
//
//   - the aggregate collection, a single JSON array (quest/poi.json)
//   - the record directory, one file per record named {game_id}.json
//
// Example record file quest/101.json:
//
//	{
//	  "game_id": 101,
//	  "wiki_id": "A01",
//	  "category": 1,
//	  "name": "はじめての「編成」！",
//	  "detail": "2隻以上の艦で編成される「艦隊」を編成せよ！"
//	}
//
// # Identifiers
//
// game_id may be an integer or a string of digits. Both spellings map to the
// same canonical ID, the decimal digits, which is also the filename stem.
// Directory entries whose stem is not all digits are not quest files.
//
// # Usage Examples
//
// Reading the aggregate and writing one record file:
//
//	records, err := quest.ReadCollection("quest/poi.json")
//	if err != nil {
//	    return err
//	}
//	path, err := quest.WriteRecordFile("quest", records[0], 2)
//
// Scanning the record directory:
//
//	names, err := quest.ListRecordFiles("quest")
//	for _, name := range names {
//	    r, err := quest.ReadRecordFile(filepath.Join("quest", name))
//	    ...
//	}
package quest
