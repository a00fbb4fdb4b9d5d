package schema

import "github.com/grdn/statfuse/internal/domain/model"

// Canonical field sets per category. Field names follow the naming the
// original data set settled on; tier buckets (field goal distances) are
// ordinary fields so scoring rules can weight them directly.
var categories = map[model.TableType][]Field{
	model.TableRushing: {
		{"games_played", Int},
		{"rush_attempts", Int},
		{"rush_yards", Int},
		{"yards_per_rush", Float},
		{"rush_yards_per_game", Float},
		{"longest_rush", Int},
		{"rush_td", Int},
	},
	model.TablePassing: {
		{"pass_attempts", Int},
		{"pass_completions", Int},
		{"completion_pct", Float},
		{"pass_yards", Int},
		{"pass_td", Int},
		{"interceptions", Int},
		{"longest_pass", Int},
		{"sacked", Int},
		{"sack_yards_lost", Int},
		{"qb_rating", Float},
	},
	model.TableReceiving: {
		{"games_played", Int},
		{"targets", Int},
		{"receptions", Int},
		{"rec_yards", Int},
		{"yards_per_rec", Float},
		{"rec_td", Int},
		{"longest_rec", Int},
		{"catch_pct", Float},
	},
	model.TableKicking: {
		{"point_after_made", Int},
		{"point_after_att", Int},
		{"att_0_19", Int},
		{"made_0_19", Int},
		{"att_20_29", Int},
		{"made_20_29", Int},
		{"att_30_39", Int},
		{"made_30_39", Int},
		{"att_40_49", Int},
		{"made_40_49", Int},
		{"att_50_plus", Int},
		{"made_50_plus", Int},
		{"longest_fg", Int},
		{"fg_points", Int},
	},
	model.TableScoring: {
		{"points", Int},
		{"total_td", Int},
		{"rush_td", Int},
		{"rec_td", Int},
		{"return_td", Int},
		{"two_pt_conversions", Int},
		{"safeties", Int},
	},
	model.TableFantasy: {
		{"age", Int},
		{"games_played", Int},
		{"games_started", Int},
		{"rush_attempts", Int},
		{"rush_yards", Int},
		{"rush_td", Int},
		{"targets", Int},
		{"receptions", Int},
		{"rec_yards", Int},
		{"rec_td", Int},
		{"pass_attempts", Int},
		{"pass_yards", Int},
		{"pass_td", Int},
		{"interceptions", Int},
		{"two_pt_conversions", Int},
		{"fumbles", Int},
	},
	model.TableDefense: {
		{"interceptions_def", Int},
		{"int_return_yards", Int},
		{"int_return_td", Int},
		{"passes_defended", Int},
		{"forced_fumbles", Int},
		{"fumbles_recovered", Int},
		{"sacks", Float},
		{"tackles_solo", Int},
		{"tackles_assists", Int},
	},
	model.TableReturns: {
		{"kick_returns", Int},
		{"kick_return_yards", Int},
		{"kick_return_td", Int},
		{"longest_kick_return", Int},
		{"punt_returns", Int},
		{"punt_return_yards", Int},
		{"punt_return_td", Int},
		{"longest_punt_return", Int},
	},
	model.TableAllPurpose: {
		{"all_purpose_yards", Int},
		{"rush_yards", Int},
		{"rec_yards", Int},
		{"kick_return_yards", Int},
		{"punt_return_yards", Int},
		{"int_return_yards", Int},
		{"fumble_return_yards", Int},
	},
	model.TableFumbles: {
		{"fumbles", Int},
		{"fumbles_lost", Int},
		{"forced_fumbles", Int},
		{"own_fumble_recoveries", Int},
		{"opp_fumble_recoveries", Int},
		{"fumble_return_yards", Int},
		{"fumble_return_td", Int},
	},
	model.TableKickReturns: {
		{"kick_returns", Int},
		{"kick_return_yards", Int},
		{"kick_return_avg", Float},
		{"kick_return_fair_catches", Int},
		{"longest_kick_return", Int},
		{"kick_return_td", Int},
	},
	model.TablePuntReturns: {
		{"punt_returns", Int},
		{"punt_return_yards", Int},
		{"punt_return_avg", Float},
		{"punt_return_fair_catches", Int},
		{"longest_punt_return", Int},
		{"punt_return_td", Int},
	},
}

// pfr binds columns by the table's data-stat labels; fdb tables carry
// no header ids, so its bindings double as the positional column order
// the scraper walks.
var bindings = map[model.Source]map[model.TableType]Binding{
	model.SourcePFR: {
		model.TableRushing: {
			Source: model.SourcePFR, Table: model.TableRushing,
			NameCol: "player", IDCol: "player_url", TeamCol: "team", PosCol: "pos",
			Columns: []Column{
				{"g", "games_played", Int},
				{"rush_att", "rush_attempts", Int},
				{"rush_yds", "rush_yards", Int},
				{"rush_yds_per_att", "yards_per_rush", Float},
				{"rush_yds_per_g", "rush_yards_per_game", Float},
				{"rush_long", "longest_rush", Int},
				{"rush_td", "rush_td", Int},
			},
		},
		model.TablePassing: {
			Source: model.SourcePFR, Table: model.TablePassing,
			NameCol: "player", IDCol: "player_url", TeamCol: "team", PosCol: "pos",
			Columns: []Column{
				{"pass_att", "pass_attempts", Int},
				{"pass_cmp", "pass_completions", Int},
				{"pass_cmp_perc", "completion_pct", Float},
				{"pass_yds", "pass_yards", Int},
				{"pass_td", "pass_td", Int},
				{"pass_int", "interceptions", Int},
				{"pass_long", "longest_pass", Int},
				{"pass_sacked", "sacked", Int},
				{"pass_sacked_yds", "sack_yards_lost", Int},
				{"pass_rating", "qb_rating", Float},
			},
		},
		model.TableReceiving: {
			Source: model.SourcePFR, Table: model.TableReceiving,
			NameCol: "player", IDCol: "player_url", TeamCol: "team", PosCol: "pos",
			Columns: []Column{
				{"g", "games_played", Int},
				{"targets", "targets", Int},
				{"rec", "receptions", Int},
				{"rec_yds", "rec_yards", Int},
				{"rec_yds_per_rec", "yards_per_rec", Float},
				{"rec_td", "rec_td", Int},
				{"rec_long", "longest_rec", Int},
				{"catch_pct", "catch_pct", Float},
			},
		},
		model.TableKicking: {
			Source: model.SourcePFR, Table: model.TableKicking,
			NameCol: "player", IDCol: "player_url", TeamCol: "team", PosCol: "pos",
			Columns: []Column{
				{"xpm", "point_after_made", Int},
				{"xpa", "point_after_att", Int},
				{"fga1", "att_0_19", Int},
				{"fgm1", "made_0_19", Int},
				{"fga2", "att_20_29", Int},
				{"fgm2", "made_20_29", Int},
				{"fga3", "att_30_39", Int},
				{"fgm3", "made_30_39", Int},
				{"fga4", "att_40_49", Int},
				{"fgm4", "made_40_49", Int},
				{"fga5", "att_50_plus", Int},
				{"fgm5", "made_50_plus", Int},
				{"fg_long", "longest_fg", Int},
				{"fg_pts", "fg_points", Int},
			},
		},
		model.TableScoring: {
			Source: model.SourcePFR, Table: model.TableScoring,
			NameCol: "player", IDCol: "player_url", TeamCol: "team", PosCol: "pos",
			Columns: []Column{
				{"points", "points", Int},
				{"all_td", "total_td", Int},
				{"rush_td", "rush_td", Int},
				{"rec_td", "rec_td", Int},
				{"kick_punt_ret_td", "return_td", Int},
				{"two_pt_md", "two_pt_conversions", Int},
				{"safety_md", "safeties", Int},
			},
		},
		model.TableFantasy: {
			Source: model.SourcePFR, Table: model.TableFantasy,
			NameCol: "player", IDCol: "player_url", TeamCol: "team", PosCol: "fantasy_pos",
			Columns: []Column{
				{"age", "age", Int},
				{"g", "games_played", Int},
				{"gs", "games_started", Int},
				{"rush_att", "rush_attempts", Int},
				{"rush_yds", "rush_yards", Int},
				{"rush_td", "rush_td", Int},
				{"targets", "targets", Int},
				{"rec", "receptions", Int},
				{"rec_yds", "rec_yards", Int},
				{"rec_td", "rec_td", Int},
				{"pass_att", "pass_attempts", Int},
				{"pass_yds", "pass_yards", Int},
				{"pass_td", "pass_td", Int},
				{"pass_int", "interceptions", Int},
				{"two_pt_md", "two_pt_conversions", Int},
				{"fumbles", "fumbles", Int},
			},
		},
		model.TableDefense: {
			Source: model.SourcePFR, Table: model.TableDefense,
			NameCol: "player", IDCol: "player_url", TeamCol: "team", PosCol: "pos",
			Columns: []Column{
				{"def_int", "interceptions_def", Int},
				{"def_int_yds", "int_return_yards", Int},
				{"def_int_td", "int_return_td", Int},
				{"pass_defended", "passes_defended", Int},
				{"fumbles_forced", "forced_fumbles", Int},
				{"fumbles_rec", "fumbles_recovered", Int},
				{"sacks", "sacks", Float},
				{"tackles_solo", "tackles_solo", Int},
				{"tackles_assists", "tackles_assists", Int},
			},
		},
		model.TableReturns: {
			Source: model.SourcePFR, Table: model.TableReturns,
			NameCol: "player", IDCol: "player_url", TeamCol: "team", PosCol: "pos",
			Columns: []Column{
				{"kick_ret", "kick_returns", Int},
				{"kick_ret_yds", "kick_return_yards", Int},
				{"kick_ret_td", "kick_return_td", Int},
				{"kick_ret_long", "longest_kick_return", Int},
				{"punt_ret", "punt_returns", Int},
				{"punt_ret_yds", "punt_return_yards", Int},
				{"punt_ret_td", "punt_return_td", Int},
				{"punt_ret_long", "longest_punt_return", Int},
			},
		},
	},
	model.SourceFDB: {
		model.TableAllPurpose: {
			Source: model.SourceFDB, Table: model.TableAllPurpose,
			NameCol: "name", IDCol: "player_url", TeamCol: "team", PosCol: "pos",
			Columns: []Column{
				{"all_purpose_yards", "all_purpose_yards", Int},
				{"rush_yards", "rush_yards", Int},
				{"rec_yards", "rec_yards", Int},
				{"kick_return_yards", "kick_return_yards", Int},
				{"punt_return_yards", "punt_return_yards", Int},
				{"int_return_yards", "int_return_yards", Int},
				{"fum_return_yards", "fumble_return_yards", Int},
			},
		},
		model.TableRushing: {
			Source: model.SourceFDB, Table: model.TableRushing,
			NameCol: "name", IDCol: "player_url", TeamCol: "team",
			Columns: []Column{
				{"games_played", "games_played", Int},
				{"rush_attempts", "rush_attempts", Int},
				{"rush_yards", "rush_yards", Int},
				{"yards_per_rush", "yards_per_rush", Float},
				{"rush_yards_per_game", "rush_yards_per_game", Float},
				{"longest_rush", "longest_rush", Int},
				{"rush_td", "rush_td", Int},
			},
		},
		model.TablePassing: {
			Source: model.SourceFDB, Table: model.TablePassing,
			NameCol: "name", IDCol: "player_url", TeamCol: "team",
			Columns: []Column{
				{"pass_attempts", "pass_attempts", Int},
				{"pass_completions", "pass_completions", Int},
				{"completion_pct", "completion_pct", Float},
				{"pass_yards", "pass_yards", Int},
				{"pass_td", "pass_td", Int},
				{"interceptions", "interceptions", Int},
				{"longest_pass", "longest_pass", Int},
				{"sacked", "sacked", Int},
				{"sack_yards_lost", "sack_yards_lost", Int},
				{"qb_rating", "qb_rating", Float},
			},
		},
		model.TableReceiving: {
			Source: model.SourceFDB, Table: model.TableReceiving,
			NameCol: "name", IDCol: "player_url", TeamCol: "team",
			Columns: []Column{
				{"games_played", "games_played", Int},
				{"targets", "targets", Int},
				{"receptions", "receptions", Int},
				{"rec_yards", "rec_yards", Int},
				{"yards_per_rec", "yards_per_rec", Float},
				{"rec_td", "rec_td", Int},
				{"longest_rec", "longest_rec", Int},
				{"catch_pct", "catch_pct", Float},
			},
		},
		model.TableScoring: {
			Source: model.SourceFDB, Table: model.TableScoring,
			NameCol: "name", IDCol: "player_url", TeamCol: "team",
			Columns: []Column{
				{"points", "points", Int},
				{"total_td", "total_td", Int},
				{"rush_td", "rush_td", Int},
				{"rec_td", "rec_td", Int},
				{"return_td", "return_td", Int},
				{"two_pt_conversions", "two_pt_conversions", Int},
				{"safeties", "safeties", Int},
			},
		},
		model.TableFumbles: {
			Source: model.SourceFDB, Table: model.TableFumbles,
			NameCol: "name", IDCol: "player_url", TeamCol: "team",
			Columns: []Column{
				{"fumbles", "fumbles", Int},
				{"fumbles_lost", "fumbles_lost", Int},
				{"forced_fumbles", "forced_fumbles", Int},
				{"own_fum_recovery", "own_fumble_recoveries", Int},
				{"opp_fum_recovery", "opp_fumble_recoveries", Int},
				{"fum_return_yards", "fumble_return_yards", Int},
				{"fum_return_td", "fumble_return_td", Int},
			},
		},
		model.TableKickReturns: {
			Source: model.SourceFDB, Table: model.TableKickReturns,
			NameCol: "name", IDCol: "player_url", TeamCol: "team",
			Columns: []Column{
				{"kick_returns", "kick_returns", Int},
				{"kr_yards", "kick_return_yards", Int},
				{"kr_avg", "kick_return_avg", Float},
				{"kr_fair_catches", "kick_return_fair_catches", Int},
				{"longest_kr", "longest_kick_return", Int},
				{"kr_td", "kick_return_td", Int},
			},
		},
		model.TablePuntReturns: {
			Source: model.SourceFDB, Table: model.TablePuntReturns,
			NameCol: "name", IDCol: "player_url", TeamCol: "team",
			Columns: []Column{
				{"punt_returns", "punt_returns", Int},
				{"pr_yards", "punt_return_yards", Int},
				{"pr_avg", "punt_return_avg", Float},
				{"pr_fair_catches", "punt_return_fair_catches", Int},
				{"longest_pr", "longest_punt_return", Int},
				{"pr_td", "punt_return_td", Int},
			},
		},
		model.TableKicking: {
			Source: model.SourceFDB, Table: model.TableKicking,
			NameCol: "name", IDCol: "player_url", TeamCol: "team",
			Columns: []Column{
				{"point_after_made", "point_after_made", Int},
				{"point_after_att", "point_after_att", Int},
				{"longest_fg", "longest_fg", Int},
				{"fg_points", "fg_points", Int},
			},
		},
	},
}
