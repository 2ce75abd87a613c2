package testutils

// Canned response bodies for each Kagi endpoint, in the wire framing the
// endpoint streams.
const (
	ProofreadStream = "event: message\n" +
		`data: {"detected_language":{"iso":"en","label":"English"}}` + "\n\n" +
		"event: message\n" +
		`data: {"delta":"Hello world."}` + "\n\n" +
		"event: message\n" +
		`data: {"analysis":{"corrected_text":"Hello world.","changes":[],"corrections_summary":"Fixed spelling.",` +
		`"tone_analysis":{"overall_tone":"neutral","description":"Plain."},` +
		`"writing_statistics":{"word_count":2,"character_count":12,"character_count_no_spaces":11,` +
		`"paragraph_count":1,"sentence_count":1,"average_words_per_sentence":2,` +
		`"average_characters_per_word":5.5,"vocabulary_diversity":1,"reading_time_minutes":0.1,` +
		`"reading_level":"Basic","readability_score":90.5}}}` + "\n\n"

	SummaryStream = `update:{"output_text":"<p>partial</p>","output_data":{"status":"generating"},"type":"update"}` + "\n" +
		`final:{"output_text":"<ul><li>Point</li></ul>","output_data":{"status":"completed",` +
		`"markdown":"- Point","title":"Example Doc","elapsed_seconds":1.5,` +
		`"word_stats":{"n_tokens":100,"n_words":80,"n_pages":1,"time_saved":30},` +
		`"response_metadata":{"speed":50.5,"tokens":120,"total_time_second":2.4,"model":"Mistral Small","version":"1","cost":0.0012}},` +
		`"type":"final"}` + "\n"

	AssistantStream = `thread.json:{"id":"thread-9","title":"Greeting","created_at":"2025-01-01T00:00:00Z"}` + "\n" +
		`tokens.json:{"text":"<details><summary>Thinking</summary>pondering</details>","id":"m1"}` + "\n" +
		`tokens.json:{"text":"<details><summary>Thinking</summary>pondering</details><p>Hi there</p>","id":"m1"}` + "\n" +
		`new_message.json:{"id":"m1","state":"done","prompt":"Hello",` +
		`"reply":"<details><summary>Thinking</summary>pondering</details><p>Hi there</p>","md":"Hi there"}` + "\n"

	SearchStream = "hi\n\n" +
		`data: [{"tag":"search.info","payload":{"share_url":"https://kagi.com/search?q=go","curr_batch":1,"curr_piece":1,"next_batch":-1,"next_piece":1}}]` + "\n\n" +
		`data: [{"tag":"search","payload":"<div class=\"_0_SRI search-result\"><a class=\"__sri_title_link\" href=\"https://go.dev\">The Go Programming Language</a><div class=\"__sri-desc\">Build simple, secure software.</div></div>"}]` + "\n\n" +
		`data: [{"tag":"domain_info","payload":[{"domain":"go.dev","trackers":0,"domain_secure":true}]}]` + "\n\n"
)
