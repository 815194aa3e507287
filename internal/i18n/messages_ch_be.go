package i18n

// berneseGermanMessages contains Bernese German (Bärndütsch) translations.
var berneseGermanMessages = map[string]string{
	// Error messages
	"error.admin_required":       "⛔ Das geit nume für Admins.",
	"error.owner_required":       "⛔ Das darf nume dr Gruppe-Bsitzer.",
	"error.groups_only":          "❌ Dä Befäu geit nume i Gruppe.",
	"error.generic":              "Öppis isch schiefgloffe. Probier's nomau.",
	"error.slow_down":            "⏳ Gemächlech, du drücksch z'schnäu.",
	"error.loop_range":           "⚠️ D'Wiederholige müesse zwüsche 0 und 10 sy.",
	"error.remove_invalid":       "⚠️ Gib bitte e gültigi Stück-Nummere aa.",
	"error.remove_range":         "⚠️ Ungültigi Nummere. D'Warteschlange het %d Stück.",
	"error.owner_invalid_usage":  "⚠️ Ungültigs Argumänt.\n",
	"error.func_failed":          "⚠️ %s\n└ Fähler: %s",
	"error.unsupported_platform": "⚠️ Die Plattform kenne mir nid: %s",
	"error.retrieval":            "⚠️ D'Song-Infos hei nid chönne glade wärde: %s",
	"error.content_not_found":    "⚠️ Nüt gfunde für die Aafrag.",

	// Playback state
	"playback.not_active":     "⏸ Es louft grad nüt.",
	"playback.skipped":        "⏭ Stück übersprunge.",
	"playback.stopped_by":     "⏹ %s het d'Wiedergab gstoppt.",
	"playback.paused_by":      "⏸ %s het pausiert.",
	"playback.resumed_by":     "▶️ %s het wyter gspiut.",
	"playback.now_playing":    "🎵 <b>Jitz louft:</b> %s\n⏱ Dur: %s\n👤 Gwünscht vo: %s",
	"playback.queued":         "➕ <b>I d'Warteschlange ta:</b> %s\n#️⃣ Platz: %d\n👤 Gwünscht vo: %s",
	"playback.queue_finished": "✅ D'Warteschlange isch düre. I verlah dr Voice-Chat.",
	"playback.timer":          "⏱ %s\n%s / %s",
	"playback.idle_left":      "💤 Scho lang nüt meh passiert. I verlah dr Voice-Chat.",

	// Callback answers
	"callback.playback_error":  "⚠️ Fähler bir Wiedergab: %s",
	"callback.stop_failed":     "⚠️ Stoppe het nid funktioniert: %s",
	"callback.pause_failed":    "⚠️ Pausiere het nid funktioniert: %s",
	"callback.resume_failed":   "⚠️ Wyterspile het nid funktioniert: %s",
	"callback.close_failed":    "⚠️ Zuemache het nid funktioniert: %s",
	"callback.close_success":   "✅ Zuegmacht.",
	"callback.invalid_request": "⚠️ Ungültigi Aafrag.",
	"callback.preparing":       "🎶 I mache dr Song parat für %s…",
	"callback.searching":       "🔍 I sueche dr Song vo %s…",

	// Settings
	"settings.enabled":          "aa ✅",
	"settings.disabled":         "us ❌",
	"settings.buttons_status":   "⚙️ <b>Chnöpf:</b> %s\n\nBruuch: <code>%s</code>",
	"settings.thumb_status":     "🖼️ <b>Vorschoubiudli:</b> %s\n\nBruuch: <code>%s</code>",
	"settings.buttons_enabled":  "✅ Chnöpf sy aa.",
	"settings.buttons_disabled": "❌ Chnöpf sy us.",
	"settings.thumb_enabled":    "✅ Vorschoubiudli sy aa.",
	"settings.thumb_disabled":   "❌ Vorschoubiudli sy us.",
	"settings.correct_usage":    "Richtig isch: <code>%s</code>",

	// Language selection
	"language.title":   "🌐 <b>Sprach</b>",
	"language.current": "Aktuelli Sprach: %s",
	"language.select":  "Wähl d'Sprach für dä Chat:",
	"language.changed": "✅ D'Sprach isch jitz %s.",
	"language.failed":  "⚠️ D'Sprach het nid chönne gänderet wärde.",

	// Queue control
	"queue.loop_usage":    "🔁 <b>Wiederhole</b>\n\nBruuch: <code>/loop [aazau]</code>\n• 0 - usschaute\n• 1-10 - so mängisch",
	"queue.loop_disabled": "🔁 Wiederhole usgschautet\n└ Gänderet vo: %s",
	"queue.loop_set":      "🔁 Wird %d Mau wiederhout\n└ Gänderet vo: %s",
	"queue.remove_usage":  "ℹ️ <b>Bruuch:</b> <code>/remove [nummere]</code>\nBispiu: <code>/remove 3</code>",
	"queue.empty":         "📭 D'Warteschlange isch läär.",
	"queue.removed":       "🗑 <b>%s</b> usegnoh\n└ Vo: %s",
	"queue.page_header":   "📋 <b>Warteschlange</b> (%d Stück) · Syte %d/%d",
	"queue.page_line":     "%d. %s",
	"queue.cleared":       "🧹 Warteschlange gläärt und gstoppt\n└ Vo: %s",
	"queue.clear_failed":  "D'Warteschlange het nid chönne gläärt wärde",

	// Command results
	"command.paused":        "⏸ Pausiert",
	"command.resumed":       "▶️ Wyter gspiut",
	"command.stopped":       "⏹ Gstoppt und Warteschlange gläärt",
	"command.pause_failed":  "Pausiere het nid funktioniert",
	"command.resume_failed": "Wyterspile het nid funktioniert",
	"command.stop_failed":   "Stoppe het nid funktioniert",
	"command.success_by":    "%s\n└ Gwünscht vo: %s",

	// Buttons
	"button.pause":  "⏸ Pause",
	"button.resume": "▶️ Wyter",
	"button.skip":   "⏭ Näächscht",
	"button.stop":   "⏹ Stopp",
	"button.close":  "✖️ Zue",
	"button.timer":  "⏱ Fortschritt",
	"button.queue":  "📋 Warteschlange",
	"button.prev":   "◀️",
	"button.next":   "▶️",
}
