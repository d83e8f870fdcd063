package sqlite

// pragma_table_info reports cid from 0 in declaration order.
const columnsSQL = `SELECT cid, name, type, "notnull" FROM pragma_table_info(?1) ORDER BY cid`
