package mysql

const upsertPlanSQL = `
INSERT INTO plans
  (id, pos, carrier, parent, network, monthly_price, data_gb, data_gb_large, large_plan_price,
   call_included, min_contract, initial_cost, esim, overseas, family_discount,
   data_rollover, store_support, features, cons, best_for, affiliate_url, affiliate_pixel, logo_emoji)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  pos              = VALUES(pos),
  carrier          = VALUES(carrier),
  parent           = VALUES(parent),
  network          = VALUES(network),
  monthly_price    = VALUES(monthly_price),
  data_gb          = VALUES(data_gb),
  data_gb_large    = VALUES(data_gb_large),
  large_plan_price = VALUES(large_plan_price),
  call_included    = VALUES(call_included),
  min_contract     = VALUES(min_contract),
  initial_cost     = VALUES(initial_cost),
  esim             = VALUES(esim),
  overseas         = VALUES(overseas),
  family_discount  = VALUES(family_discount),
  data_rollover    = VALUES(data_rollover),
  store_support    = VALUES(store_support),
  features         = VALUES(features),
  cons             = VALUES(cons),
  best_for         = VALUES(best_for),
  affiliate_url    = VALUES(affiliate_url),
  affiliate_pixel  = VALUES(affiliate_pixel),
  logo_emoji       = VALUES(logo_emoji)
`

// deleteStalePlansPrefix is completed with one placeholder per kept id.
const deleteStalePlansPrefix = "DELETE FROM plans WHERE id NOT IN "

const deleteAllPlansSQL = "DELETE FROM plans"

const deletePairsSQL = "DELETE FROM compare_pairs"

const insertPairSQL = "INSERT INTO compare_pairs (pos, plan_a, plan_b) VALUES (?, ?, ?)"

const deleteRankingsSQL = "DELETE FROM rankings"

const insertRankingSQL = `
INSERT INTO rankings (id, pos, title, description, ranking_order)
VALUES (?, ?, ?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const selectPlansSQL = `
SELECT id, carrier, parent, network, monthly_price, data_gb, data_gb_large, large_plan_price,
       call_included, min_contract, initial_cost, esim, overseas, family_discount,
       data_rollover, store_support, features, cons, best_for, affiliate_url, affiliate_pixel, logo_emoji
FROM plans
ORDER BY pos
`

const selectPairsSQL = "SELECT plan_a, plan_b FROM compare_pairs ORDER BY pos"

const selectRankingsSQL = `
SELECT id, title, description, ranking_order
FROM rankings
ORDER BY pos
`
