package i18n

// englishMessages contains all English translations.
var englishMessages = map[string]string{
	// Error messages
	"error.admin_required":       "⛔ Administrator privileges required.",
	"error.owner_required":       "⛔ Group owner privileges required.",
	"error.groups_only":          "❌ This command is only available in groups.",
	"error.generic":              "Something went wrong. Please try again.",
	"error.slow_down":            "⏳ Slow down, you are pressing too fast.",
	"error.loop_range":           "⚠️ Loop count must be between 0 and 10.",
	"error.remove_invalid":       "⚠️ Please provide a valid track number.",
	"error.remove_range":         "⚠️ Invalid track number. The queue has %d track(s).",
	"error.owner_invalid_usage":  "⚠️ Invalid argument.\n",
	"error.func_failed":          "⚠️ %s\n└ Error: %s",
	"error.unsupported_platform": "⚠️ Unsupported platform: %s",
	"error.retrieval":            "⚠️ Could not fetch song details: %s",
	"error.content_not_found":    "⚠️ Nothing found for this request.",

	// Playback state
	"playback.not_active":     "⏸ No active playback session.",
	"playback.skipped":        "⏭ Track skipped.",
	"playback.stopped_by":     "⏹ Playback stopped by %s.",
	"playback.paused_by":      "⏸ Playback paused by %s.",
	"playback.resumed_by":     "▶️ Playback resumed by %s.",
	"playback.now_playing":    "🎵 <b>Now playing:</b> %s\n⏱ Duration: %s\n👤 Requested by: %s",
	"playback.queued":         "➕ <b>Added to queue:</b> %s\n#️⃣ Position: %d\n👤 Requested by: %s",
	"playback.queue_finished": "✅ Queue finished. Leaving the voice chat.",
	"playback.timer":          "⏱ %s\n%s / %s",
	"playback.idle_left":      "💤 No activity for a while. Leaving the voice chat.",

	// Callback answers
	"callback.playback_error":  "⚠️ Playback error: %s",
	"callback.stop_failed":     "⚠️ Failed to stop playback: %s",
	"callback.pause_failed":    "⚠️ Failed to pause playback: %s",
	"callback.resume_failed":   "⚠️ Failed to resume playback: %s",
	"callback.close_failed":    "⚠️ Failed to close the interface: %s",
	"callback.close_success":   "✅ Interface closed.",
	"callback.invalid_request": "⚠️ Invalid request.",
	"callback.preparing":       "🎶 Preparing the song for %s…",
	"callback.searching":       "🔍 Searching for the song requested by %s…",

	// Settings
	"settings.enabled":          "enabled ✅",
	"settings.disabled":         "disabled ❌",
	"settings.buttons_status":   "⚙️ <b>Button Control Status:</b> %s\n\nUsage: <code>%s</code>",
	"settings.thumb_status":     "🖼️ <b>Thumbnail Status:</b> %s\n\nUsage: <code>%s</code>",
	"settings.buttons_enabled":  "✅ Button controls enabled.",
	"settings.buttons_disabled": "❌ Button controls disabled.",
	"settings.thumb_enabled":    "✅ Thumbnails enabled.",
	"settings.thumb_disabled":   "❌ Thumbnails disabled.",
	"settings.correct_usage":    "Correct usage: <code>%s</code>",

	// Language selection
	"language.title":   "🌐 <b>Language</b>",
	"language.current": "Current language: %s",
	"language.select":  "Choose the language for this chat:",
	"language.changed": "✅ Language changed to %s.",
	"language.failed":  "⚠️ Could not change the language.",

	// Queue control
	"queue.loop_usage":    "🔁 <b>Loop Control</b>\n\nUsage: <code>/loop [count]</code>\n• 0 - Disable loop\n• 1-10 - Loop count",
	"queue.loop_disabled": "🔁 Looping disabled\n└ Changed by: %s",
	"queue.loop_set":      "🔁 Set to loop %d time(s)\n└ Changed by: %s",
	"queue.remove_usage":  "ℹ️ <b>Usage:</b> <code>/remove [track_number]</code>\nExample: <code>/remove 3</code>",
	"queue.empty":         "📭 The queue is currently empty.",
	"queue.removed":       "🗑 Removed <b>%s</b> from the queue\n└ Removed by: %s",
	"queue.page_header":   "📋 <b>Queue</b> (%d track(s)) · page %d/%d",
	"queue.page_line":     "%d. %s",
	"queue.cleared":       "🧹 Queue cleared and playback stopped\n└ Cleared by: %s",
	"queue.clear_failed":  "Failed to clear the queue",

	// Command results
	"command.paused":        "⏸ Playback paused",
	"command.resumed":       "▶️ Playback resumed",
	"command.stopped":       "⏹ Playback stopped and queue cleared",
	"command.pause_failed":  "Failed to pause playback",
	"command.resume_failed": "Failed to resume playback",
	"command.stop_failed":   "Failed to stop playback",
	"command.success_by":    "%s\n└ Requested by: %s",

	// Buttons
	"button.pause":  "⏸ Pause",
	"button.resume": "▶️ Resume",
	"button.skip":   "⏭ Skip",
	"button.stop":   "⏹ Stop",
	"button.close":  "✖️ Close",
	"button.timer":  "⏱ Progress",
	"button.queue":  "📋 Queue",
	"button.prev":   "◀️",
	"button.next":   "▶️",
}
