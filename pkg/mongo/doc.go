// Package mongo connects to MongoDB with the official v2 driver.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "")
//	if err != nil {
//	    return err
//	}
//	backend, err := flashstore.NewMongo(ctx, db.Collection("toast_flash"))
package mongo
