package validation

// requiredKeys lists the catalog entries checks can render, by component.
var requiredKeys = map[string][]string{
	"common": {
		"infinity",
		"pos_infinity",
		"neg_infinity",
		"element",
		"row",
		"col",
		"sample",
		"tab",
		"space",
		"number",
		"integer",
		"boolean",
		"text",
	},
	"str": {
		"length_exact",
		"length_over",
		"length_under",
		"illegal_chars",
		"illegal_head",
		"illegal_tail",
		"illegal_unknown",
		"foreign_script",
		"banned",
	},
	"num": {
		"out_of_range",
		"banned",
	},
	"list": {
		"count_exact",
		"count_range",
		"duplicates",
		"banned",
		"missing",
		"format",
		"not_type",
		"num_out_of_range",
		"num_banned",
		"not_standardizable",
		"compare_extra",
		"compare_diff",
		"compare_order",
		"compare_excess",
		"compare_excess_note",
		"compare_length",
		"compare_length_note",
		"coerce_failed",
	},
	"file": {
		"not_exist",
		"suffix",
		"empty",
		"size",
		"binary",
		"encoding",
		"convert",
		"xlsx",
		"field_count",
		"line_sep",
		"sep_head",
		"sep_double",
		"sep_blank_before",
		"sep_blank_after",
		"sep_blank_tail",
		"sep_row",
		"blank_line",
		"line_dup",
		"header_short",
		"row_count",
		"row_range",
		"col_count",
		"col_range",
		"row_detail",
		"col_detail",
		"row_fixed",
		"col_fixed",
		"row_fixed_span",
		"col_fixed_span",
		"row_not_standardizable",
		"col_not_standardizable",
		"rows_ge_cols",
		"rows_gt_cols",
		"rows_le_cols",
		"rows_lt_cols",
		"more_rows",
		"more_cols",
		"same_dims",
		"row_count_exact",
		"col_count_exact",
		"row_missing",
		"short_row",
		"row_not_contains",
		"col_not_contains",
		"compare_not_file",
		"compare_lines",
		"check_content_failed",
		"check_dim_failed",
		"com_dim_failed",
		"row_failed",
		"col_failed",
		"empty_failed",
		"size_failed",
		"encoding_failed",
		"header_failed",
		"line_dup_failed",
		"line_sep_failed",
		"preprocess_failed",
	},
	"tool": {
		"delete_failed",
		"mkdir_failed",
		"copy_failed",
		"copy_same",
		"copy_not_file",
		"result_tree_failed",
		"dir_check_failed",
		"no_result",
		"incomplete",
		"incomplete_empty",
		"empty_files",
		"zip_failed",
		"copy_result_failed",
		"copy_json_failed",
		"make_result_failed",
		"log_header",
		"default_log",
	},
}
