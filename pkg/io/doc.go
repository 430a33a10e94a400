// Package io provides JSON import and export for cabinet designs.
//
// # Overview
//
// A saved design is a single JSON object holding the global heights and the
// ordered column list. The format is what the web designer's save/load
// endpoints, the shell's save/load commands and the design stores exchange,
// so it must round-trip: export a cabinet, import it, and every column,
// shelf list, drawer and flag comes back unchanged.
//
// # JSON Format
//
//	{
//	    "total_height": 240.0,
//	    "bottom_height": 80.0,
//	    "plinth_height": 8.0,
//	    "columns": [
//	        {
//	            "width": 60,
//	            "shelf_heights": [133.3, 186.7],
//	            "vertical_dividers": [],
//	            "has_top": true,
//	            "merge_right": false,
//	            "drawers": [{"height": 20.0}]
//	        }
//	    ]
//	}
//
// Missing top-level heights default to 240/80/8 cm and a missing columns
// array means an empty cabinet.
//
// # Legacy Files
//
// Older files describe columns differently. [ReadJSON] upgrades them on the
// fly:
//
//   - shelves (a compartment count, default 3) becomes evenly spaced
//     shelf_heights when shelf_heights is absent
//   - missing vertical_dividers, has_top and merge_right become [], true and
//     false
//   - has_drawers without drawers becomes three 20 cm drawers (true) or none
//     (false); the legacy key is not written back
//
// # Errors
//
// Every import failure, whether malformed JSON, a wrong field type or a
// state that breaks a cabinet invariant, is reported as LOAD_FAILED wrapping
// the cause. Callers keep their previous cabinet on error.
package io
